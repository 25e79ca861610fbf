package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-paybot/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-paybot/internal/domain/errors"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/provider"
	"github.com/wekeepgrowing/semo-paybot/internal/usecase"
	apperrors "github.com/wekeepgrowing/semo-paybot/pkg/errors"
)

// MockCheckoutProvider is a mock implementation of CheckoutProvider
type MockCheckoutProvider struct {
	mock.Mock
}

func (m *MockCheckoutProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CheckoutSession), args.Error(1)
}

func (m *MockCheckoutProvider) GetProviderName() string {
	return "mock"
}

func testCatalog(t *testing.T) *entity.Catalog {
	t.Helper()
	catalog, err := entity.NewCatalog([]entity.Product{
		{Name: "Arbitrage base", PriceID: "price_base"},
		{Name: "Arbitrage start", PriceID: "price_start"},
	})
	require.NoError(t, err)
	return catalog
}

func TestCheckoutUsecase_StartCheckout(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("known product uses its price id", func(t *testing.T) {
		mockProvider := new(MockCheckoutProvider)
		mockProvider.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(req *provider.CheckoutSessionRequest) bool {
			return req.PriceID == "price_start" &&
				req.Quantity == 1 &&
				req.Mode == provider.CheckoutModeSubscription &&
				req.SuccessURL == "https://pay.example.com/success" &&
				req.CancelURL == "https://pay.example.com/cancel" &&
				req.ClientReferenceID == "1001" &&
				req.Metadata["telegram_chat_id"] == "2002"
		})).Return(&provider.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}, nil).Once()

		uc := usecase.NewCheckoutUsecase(testCatalog(t), mockProvider, "https://pay.example.com", logger)
		result, err := uc.StartCheckout(ctx, usecase.CheckoutRequest{
			ProductName: "Arbitrage start",
			UserID:      1001,
			ChatID:      2002,
		})

		require.NoError(t, err)
		assert.Equal(t, "Arbitrage start", result.Product.Name)
		assert.Equal(t, "cs_1", result.SessionID)
		assert.Equal(t, "https://checkout.stripe.com/cs_1", result.URL)
		mockProvider.AssertNumberOfCalls(t, "CreateCheckoutSession", 1)
	})

	t.Run("unknown product never calls the provider", func(t *testing.T) {
		mockProvider := new(MockCheckoutProvider)

		uc := usecase.NewCheckoutUsecase(testCatalog(t), mockProvider, "https://pay.example.com", logger)
		result, err := uc.StartCheckout(ctx, usecase.CheckoutRequest{ProductName: "Arbitrage pro"})

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domainErrors.ErrProductNotFound))
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
		mockProvider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("provider error is returned unchanged", func(t *testing.T) {
		providerErr := apperrors.NewAppError(apperrors.ErrUnavailable, "api unreachable", nil)
		mockProvider := new(MockCheckoutProvider)
		mockProvider.On("CreateCheckoutSession", ctx, mock.Anything).Return(nil, providerErr)

		uc := usecase.NewCheckoutUsecase(testCatalog(t), mockProvider, "https://pay.example.com", logger)
		_, err := uc.StartCheckout(ctx, usecase.CheckoutRequest{ProductName: "Arbitrage base"})

		assert.Equal(t, providerErr, err)
	})
}
