package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/entity"
	"go.uber.org/zap"
)

// Stripe amounts for these currencies are already in whole units
var zeroDecimalCurrencies = map[stripe.Currency]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

type priceGetter interface {
	Get(id string, params *stripe.PriceParams) (*stripe.Price, error)
}

type priceReport struct {
	Product  entity.Product
	Price    *stripe.Price
	Problems []string
}

func (r priceReport) OK() bool {
	return len(r.Problems) == 0
}

// checkPrices fetches every catalog price and records why it cannot back a
// subscription checkout. It returns the number of prices with problems.
func checkPrices(ctx context.Context, prices priceGetter, catalog *entity.Catalog, logger *zap.Logger) ([]priceReport, int) {
	logger.Info("Checking catalog prices", zap.Int("products", catalog.Len()))

	reports := make([]priceReport, 0, catalog.Len())
	failed := 0

	for _, product := range catalog.Products() {
		params := &stripe.PriceParams{}
		params.Context = ctx
		params.AddExpand("product")

		report := priceReport{Product: product}

		p, err := prices.Get(product.PriceID, params)
		if err != nil {
			report.Problems = []string{fmt.Sprintf("lookup failed: %v", err)}
		} else {
			report.Price = p
			report.Problems = checkPrice(p)
		}

		if report.OK() {
			logger.Info("Price ready",
				zap.String("product", product.Name),
				zap.String("price_id", product.PriceID),
				zap.String("amount", formatAmount(report.Price)),
				zap.String("interval", formatInterval(report.Price)))
		} else {
			failed++
			logger.Error("Price not usable",
				zap.String("product", product.Name),
				zap.String("price_id", product.PriceID),
				zap.Strings("problems", report.Problems))
		}

		reports = append(reports, report)
	}

	return reports, failed
}

func checkPrice(p *stripe.Price) []string {
	var problems []string
	if !p.Active {
		problems = append(problems, "price is inactive")
	}
	if p.Type != stripe.PriceTypeRecurring || p.Recurring == nil {
		problems = append(problems, "price is not recurring")
	}
	if p.Product != nil && p.Product.Name != "" && !p.Product.Active {
		problems = append(problems, "product is archived")
	}
	return problems
}

// formatAmount renders the unit amount in major units, e.g. "19.99 USD".
func formatAmount(p *stripe.Price) string {
	if p == nil {
		return ""
	}

	amount := decimal.NewFromInt(p.UnitAmount)
	if !zeroDecimalCurrencies[p.Currency] {
		amount = amount.Shift(-2)
		return amount.StringFixed(2) + " " + strings.ToUpper(string(p.Currency))
	}
	return amount.String() + " " + strings.ToUpper(string(p.Currency))
}

func formatInterval(p *stripe.Price) string {
	if p == nil || p.Recurring == nil {
		return "one_time"
	}
	if p.Recurring.IntervalCount > 1 {
		return fmt.Sprintf("every %d %ss", p.Recurring.IntervalCount, p.Recurring.Interval)
	}
	return string(p.Recurring.Interval)
}
