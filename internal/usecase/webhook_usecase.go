package usecase

import (
	"context"

	"github.com/wekeepgrowing/semo-paybot/internal/domain/provider"
	"go.uber.org/zap"
)

// WebhookUsecase dispatches verified webhook events. Every branch only logs;
// nothing is stored and no event type is rejected.
type WebhookUsecase struct {
	logger *zap.Logger
}

func NewWebhookUsecase(logger *zap.Logger) *WebhookUsecase {
	return &WebhookUsecase{logger: logger}
}

// HandleEvent logs the event and reports whether its type is recognized.
func (u *WebhookUsecase) HandleEvent(ctx context.Context, event *provider.WebhookEvent) bool {
	fields := []zap.Field{
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Bool("livemode", event.Livemode),
	}
	if !event.CreatedAt.IsZero() {
		fields = append(fields, zap.Time("event_created", event.CreatedAt))
	}
	if product, ok := event.Metadata["product"]; ok {
		fields = append(fields, zap.String("product", product))
	}

	switch event.EventType {
	case provider.EventTypeCheckoutSessionCompleted:
		u.logger.Info("Payment succeeded for checkout session",
			append(fields, zap.String("session_id", event.ObjectID))...)

	case provider.EventTypePaymentIntentSucceeded:
		u.logger.Info("PaymentIntent succeeded",
			append(fields, zap.String("payment_intent_id", event.ObjectID))...)

	case provider.EventTypePaymentIntentPaymentFailed:
		u.logger.Warn("Payment failed",
			append(fields,
				zap.String("payment_intent_id", event.ObjectID),
				zap.String("failure_message", event.FailureMessage),
			)...)

	default:
		u.logger.Info("Unhandled event type", fields...)
		return false
	}

	return true
}
