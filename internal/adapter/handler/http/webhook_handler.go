package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/wekeepgrowing/semo-paybot/internal/domain/errors"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/provider"
	"go.uber.org/zap"
)

// EventHandler consumes webhook events that passed verification
type EventHandler interface {
	HandleEvent(ctx context.Context, event *provider.WebhookEvent) bool
}

type WebhookHandler struct {
	logger   *zap.Logger
	verifier provider.WebhookVerifier
	events   EventHandler
}

func NewWebhookHandler(logger *zap.Logger, verifier provider.WebhookVerifier, events EventHandler) *WebhookHandler {
	return &WebhookHandler{
		logger:   logger,
		verifier: verifier,
		events:   events,
	}
}

// HandleWebhook answers 400 with a plain-text reason when the body or the
// signature is rejected and 200 {"success": true} for every verified event.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Warn("Error reading webhook body", zap.Error(err))
		return c.String(http.StatusBadRequest, "Invalid payload")
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := h.verifier.ParseWebhook(body, sig)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSignature):
			h.logger.Warn("Webhook signature verification failed", zap.Error(err))
			return c.String(http.StatusBadRequest, "Invalid signature")
		default:
			h.logger.Warn("Invalid webhook payload", zap.Error(err))
			return c.String(http.StatusBadRequest, "Invalid payload")
		}
	}

	handled := h.events.HandleEvent(c.Request().Context(), event)
	h.logger.Debug("Webhook acknowledged",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.Bool("handled", handled),
	)

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
