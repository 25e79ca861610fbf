package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Display names of the two products the bot shipped with. PRICE_ID_FIRST_PRODUCT
// and PRICE_ID_SECOND_PRODUCT set their prices.
const (
	firstProductName  = "Arbitrage base"
	secondProductName = "Arbitrage start"
)

// envOverlay lists the environment variables that override file settings.
// Empty values leave the file setting untouched.
type envOverlay struct {
	AppEnv              string `env:"APP_ENV"`
	PaymentProvider     string `env:"PAYMENT_PROVIDER"`
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	ServerURL           string `env:"SERVER_URL"`
	TelegramToken       string `env:"TELEGRAM_TOKEN"`
	HTTPHost            string `env:"HTTP_HOST"`
	HTTPPort            int    `env:"HTTP_PORT"`
	GRPCPort            int    `env:"GRPC_PORT"`
	LogLevel            string `env:"LOG_LEVEL"`
	LogFormat           string `env:"LOG_FORMAT"`

	// PRODUCTS is "name:price_id,name:price_id"; order is kept for the menu
	Products string `env:"PRODUCTS"`

	FirstProductPriceID  string `env:"PRICE_ID_FIRST_PRODUCT"`
	SecondProductPriceID string `env:"PRICE_ID_SECOND_PRODUCT"`
}

// loadDotEnv loads .env from the working directory when present.
// Variables already set in the process win over the file.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var ov envOverlay
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	setString(&c.Service.Environment, ov.AppEnv)
	setString(&c.Service.PaymentProvider, ov.PaymentProvider)
	setString(&c.Service.StripeSecretKey, ov.StripeSecretKey)
	setString(&c.Service.StripeWebhookSecret, ov.StripeWebhookSecret)
	setString(&c.Service.ServerURL, ov.ServerURL)
	setString(&c.Telegram.Token, ov.TelegramToken)
	setString(&c.Server.HTTP.Host, ov.HTTPHost)
	setString(&c.Log.Level, ov.LogLevel)
	setString(&c.Log.Format, ov.LogFormat)
	if ov.HTTPPort != 0 {
		c.Server.HTTP.Port = ov.HTTPPort
	}
	if ov.GRPCPort != 0 {
		c.Server.GRPC.Port = ov.GRPCPort
	}

	if ov.Products != "" {
		products, err := parseProducts(ov.Products)
		if err != nil {
			return err
		}
		c.Products = products
	}

	// the legacy keys override the price of the two original products
	// wherever the catalog came from
	c.setProductPrice(firstProductName, ov.FirstProductPriceID)
	c.setProductPrice(secondProductName, ov.SecondProductPriceID)

	return nil
}

// setProductPrice replaces the price of the named product, appending the
// product when the catalog does not have it. An empty priceID is a no-op.
func (c *Config) setProductPrice(name, priceID string) {
	if priceID == "" {
		return
	}
	for i := range c.Products {
		if strings.TrimSpace(c.Products[i].Name) == name {
			c.Products[i].PriceID = priceID
			return
		}
	}
	c.Products = append(c.Products, ProductConfig{Name: name, PriceID: priceID})
}

func setString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

// parseProducts splits on the last ':' of each entry so names may contain colons.
func parseProducts(raw string) ([]ProductConfig, error) {
	var products []ProductConfig
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		idx := strings.LastIndex(entry, ":")
		if idx <= 0 || idx == len(entry)-1 {
			return nil, fmt.Errorf("invalid PRODUCTS entry %q, want name:price_id", entry)
		}
		products = append(products, ProductConfig{
			Name:    strings.TrimSpace(entry[:idx]),
			PriceID: strings.TrimSpace(entry[idx+1:]),
		})
	}
	return products, nil
}
