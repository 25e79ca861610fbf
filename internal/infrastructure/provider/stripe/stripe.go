package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	domainErrors "github.com/wekeepgrowing/semo-paybot/internal/domain/errors"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/provider"
	apperrors "github.com/wekeepgrowing/semo-paybot/pkg/errors"
	"go.uber.org/zap"
)

// sessionCreator is the subset of the Stripe checkout session client used here
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeProvider implements CheckoutProvider and WebhookVerifier for Stripe
type StripeProvider struct {
	sessions      sessionCreator
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeProvider creates a Stripe provider bound to its own API client,
// so no package-level stripe.Key is set.
func NewStripeProvider(secretKey, webhookSecret string, logger *zap.Logger) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		sessions:      sc.CheckoutSessions,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return string(provider.ProviderTypeStripe)
}

// CreateCheckoutSession creates a hosted Stripe Checkout Session
func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSession, error) {
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	mode := req.Mode
	if mode == "" {
		mode = provider.CheckoutModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(quantity),
			},
		},
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	if req.ClientReferenceID != "" {
		params.ClientReferenceID = stripe.String(req.ClientReferenceID)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	session, err := s.sessions.New(params)
	if err != nil {
		return nil, translateStripeError(err)
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", session.ID),
		zap.String("price_id", req.PriceID),
	)

	return &provider.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// translateStripeError converts SDK errors into coded application errors.
// The message keeps Stripe's human-readable text for display in chat.
func translateStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		msg := stripeErr.Msg
		if msg == "" {
			msg = string(stripeErr.Type)
		}
		code := apperrors.ErrUnavailable
		if stripeErr.HTTPStatusCode == 400 || stripeErr.HTTPStatusCode == 404 {
			code = apperrors.ErrInvalidArgument
		}
		return apperrors.NewAppError(code, msg, errors.Join(domainErrors.ErrCheckoutSessionFailed, err))
	}

	return apperrors.NewAppError(apperrors.ErrUnavailable, err.Error(), errors.Join(domainErrors.ErrCheckoutSessionFailed, err))
}

// ParseWebhook checks that the payload is a JSON event, then verifies the
// Stripe-Signature header. Payload problems are reported before signature problems.
func (s *StripeProvider) ParseWebhook(payload []byte, signature string) (*provider.WebhookEvent, error) {
	var probe map[string]interface{}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid payload",
			fmt.Errorf("%w: %v", domainErrors.ErrInvalidPayload, err))
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		if isSignatureError(err) {
			return nil, apperrors.NewAppError(apperrors.ErrUnauthenticated, "invalid signature",
				fmt.Errorf("%w: %v", domainErrors.ErrInvalidSignature, err))
		}
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid payload",
			fmt.Errorf("%w: %v", domainErrors.ErrInvalidPayload, err))
	}

	return toWebhookEvent(event), nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

// toWebhookEvent reads the fields this service logs from the raw event object
func toWebhookEvent(event stripe.Event) *provider.WebhookEvent {
	out := &provider.WebhookEvent{
		EventID:   event.ID,
		EventType: string(event.Type),
		Livemode:  event.Livemode,
		CreatedAt: time.Unix(event.Created, 0).UTC(),
	}
	if event.Data == nil || event.Data.Object == nil {
		return out
	}

	obj := event.Data.Object
	out.ObjectID, _ = obj["id"].(string)

	if lastErr, ok := obj["last_payment_error"].(map[string]interface{}); ok {
		out.FailureMessage, _ = lastErr["message"].(string)
	}

	if meta, ok := obj["metadata"].(map[string]interface{}); ok && len(meta) > 0 {
		out.Metadata = make(map[string]string, len(meta))
		for k, v := range meta {
			if str, ok := v.(string); ok {
				out.Metadata[k] = str
			}
		}
	}

	return out
}
