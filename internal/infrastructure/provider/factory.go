package provider

import (
	"fmt"

	"github.com/wekeepgrowing/semo-paybot/internal/config"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/provider"
	stripeProvider "github.com/wekeepgrowing/semo-paybot/internal/infrastructure/provider/stripe"
	"go.uber.org/zap"
)

// Factory creates payment providers based on the provider type
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new provider factory
func NewFactory(config *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: config,
		logger: logger,
	}
}

// GetProvider returns a payment provider based on the provider type
func (f *Factory) GetProvider(providerType provider.ProviderType) (provider.PaymentProvider, error) {
	switch providerType {
	case provider.ProviderTypeStripe:
		return f.createStripeProvider()
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// GetProviderFromString returns a payment provider from a string type
func (f *Factory) GetProviderFromString(providerStr string) (provider.PaymentProvider, error) {
	// Default to Stripe if not specified
	if providerStr == "" {
		providerStr = string(provider.ProviderTypeStripe)
	}

	return f.GetProvider(provider.ProviderType(providerStr))
}

func (f *Factory) createStripeProvider() (provider.PaymentProvider, error) {
	if f.config.Service.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key not configured")
	}
	if f.config.Service.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret not configured")
	}

	return stripeProvider.NewStripeProvider(
		f.config.Service.StripeSecretKey,
		f.config.Service.StripeWebhookSecret,
		f.logger,
	), nil
}
