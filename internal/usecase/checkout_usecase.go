package usecase

import (
	"context"
	"strconv"

	"github.com/wekeepgrowing/semo-paybot/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-paybot/internal/domain/errors"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/provider"
	apperrors "github.com/wekeepgrowing/semo-paybot/pkg/errors"
	"go.uber.org/zap"
)

// CheckoutRequest is a product selection coming from the chat front end
type CheckoutRequest struct {
	ProductName string
	UserID      int64
	ChatID      int64
}

// CheckoutResult carries the hosted checkout URL back to the chat
type CheckoutResult struct {
	Product   entity.Product
	SessionID string
	URL       string
}

type CheckoutUsecase struct {
	catalog   *entity.Catalog
	provider  provider.CheckoutProvider
	serverURL string
	logger    *zap.Logger
}

func NewCheckoutUsecase(
	catalog *entity.Catalog,
	checkoutProvider provider.CheckoutProvider,
	serverURL string,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		catalog:   catalog,
		provider:  checkoutProvider,
		serverURL: serverURL,
		logger:    logger,
	}
}

// StartCheckout resolves the product and creates a subscription checkout session.
// Unknown products return a NOT_FOUND error without calling the provider.
func (u *CheckoutUsecase) StartCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	product, ok := u.catalog.Lookup(req.ProductName)
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "product not found", domainErrors.ErrProductNotFound)
	}

	u.logger.Info("Creating checkout session",
		zap.String("provider", u.provider.GetProviderName()),
		zap.String("product", product.Name),
		zap.String("price_id", product.PriceID),
		zap.Int64("chat_id", req.ChatID),
	)

	session, err := u.provider.CreateCheckoutSession(ctx, &provider.CheckoutSessionRequest{
		PriceID:           product.PriceID,
		Quantity:          1,
		Mode:              provider.CheckoutModeSubscription,
		SuccessURL:        u.serverURL + "/success",
		CancelURL:         u.serverURL + "/cancel",
		ClientReferenceID: strconv.FormatInt(req.UserID, 10),
		Metadata: map[string]string{
			"product":          product.Name,
			"telegram_chat_id": strconv.FormatInt(req.ChatID, 10),
		},
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Product:   product,
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
