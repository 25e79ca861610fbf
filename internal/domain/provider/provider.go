package provider

import (
	"context"
	"time"
)

// CheckoutProvider creates hosted checkout sessions with a payment provider.
type CheckoutProvider interface {
	// CreateCheckoutSession creates a hosted checkout session and returns its URL
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// WebhookVerifier authenticates and parses provider webhook deliveries.
type WebhookVerifier interface {
	// ParseWebhook verifies the signature header against the raw payload.
	// Errors wrap domain errors ErrInvalidPayload or ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// PaymentProvider is a provider that both sells and reports payments.
type PaymentProvider interface {
	CheckoutProvider
	WebhookVerifier
}

// CheckoutMode is the kind of checkout session to create
type CheckoutMode string

const CheckoutModeSubscription CheckoutMode = "subscription"

// CheckoutSessionRequest represents a provider-agnostic checkout session request
type CheckoutSessionRequest struct {
	PriceID           string            `json:"price_id"`
	Quantity          int64             `json:"quantity"`
	Mode              CheckoutMode      `json:"mode"`
	SuccessURL        string            `json:"success_url"`
	CancelURL         string            `json:"cancel_url"`
	ClientReferenceID string            `json:"client_reference_id,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// CheckoutSession is the part of a created session this service keeps
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEvent represents a verified provider webhook event
type WebhookEvent struct {
	EventID        string            `json:"event_id"`
	EventType      string            `json:"event_type"`
	ObjectID       string            `json:"object_id,omitempty"`
	FailureMessage string            `json:"failure_message,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Livemode       bool              `json:"livemode"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Event types this service reacts to
const (
	EventTypeCheckoutSessionCompleted   = "checkout.session.completed"
	EventTypePaymentIntentSucceeded     = "payment_intent.succeeded"
	EventTypePaymentIntentPaymentFailed = "payment_intent.payment_failed"
)

// ProviderType represents the type of payment provider
type ProviderType string

const (
	ProviderTypeStripe ProviderType = "stripe"
)
