package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-paybot/internal/domain/errors"
	"github.com/wekeepgrowing/semo-paybot/internal/usecase"
	apperrors "github.com/wekeepgrowing/semo-paybot/pkg/errors"
	"go.uber.org/zap"
)

const (
	welcomeText       = "Welcome to the payment bot!\n\nUse /choose_product to pick a product and get a payment link."
	chooseProductText = "Choose a product to pay for:"
	paymentLinkText   = "You chose: %s\nHere is your payment link: %s\n\nPay to complete your order."
	notFoundText      = "The selected product was not found."
	checkoutErrorText = "An error occurred while creating the payment session: %s"
)

// Sender is the part of the Bot API client the handler talks to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type CheckoutStarter interface {
	StartCheckout(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error)
}

type BotHandler struct {
	sender   Sender
	checkout CheckoutStarter
	catalog  *entity.Catalog
	logger   *zap.Logger
}

func NewBotHandler(sender Sender, checkout CheckoutStarter, catalog *entity.Catalog, logger *zap.Logger) *BotHandler {
	return &BotHandler{
		sender:   sender,
		checkout: checkout,
		catalog:  catalog,
		logger:   logger,
	}
}

// HandleUpdate processes a single update to completion.
func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleSelection(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(update.Message)
	}
}

func (h *BotHandler) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		h.send(tgbotapi.NewMessage(msg.Chat.ID, welcomeText))

	case "choose_product":
		reply := tgbotapi.NewMessage(msg.Chat.ID, chooseProductText)
		reply.ReplyMarkup = h.productKeyboard()
		h.send(reply)

	default:
		h.logger.Debug("Ignoring unknown command",
			zap.String("command", msg.Command()),
			zap.Int64("chat_id", msg.Chat.ID),
		)
	}
}

// productKeyboard lays out one button per product; the callback data is the product name.
func (h *BotHandler) productKeyboard() tgbotapi.InlineKeyboardMarkup {
	products := h.catalog.Products()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products))
	for _, p := range products {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name, p.Name),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *BotHandler) handleSelection(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// stops the loading indicator on the pressed button
	if _, err := h.sender.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.Warn("Failed to answer callback query", zap.Error(err), zap.String("query_id", query.ID))
	}

	if query.Message == nil {
		h.logger.Warn("Callback query without message", zap.String("query_id", query.ID))
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	var userID int64
	if query.From != nil {
		userID = query.From.ID
	}

	result, err := h.checkout.StartCheckout(ctx, usecase.CheckoutRequest{
		ProductName: query.Data,
		UserID:      userID,
		ChatID:      chatID,
	})
	if err != nil {
		h.edit(chatID, messageID, h.errorText(err))
		apperrors.LogError(h.logger, err, "Checkout failed",
			zap.String("product", query.Data),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	h.edit(chatID, messageID, fmt.Sprintf(paymentLinkText, result.Product.Name, result.URL))
}

func (h *BotHandler) errorText(err error) string {
	if errors.Is(err, domainErrors.ErrProductNotFound) {
		return notFoundText
	}

	msg := err.Error()
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message()
	}
	return fmt.Sprintf(checkoutErrorText, msg)
}

func (h *BotHandler) send(msg tgbotapi.MessageConfig) {
	if _, err := h.sender.Send(msg); err != nil {
		apperrors.LogError(h.logger, err, "Failed to send message", zap.Int64("chat_id", msg.ChatID))
	}
}

func (h *BotHandler) edit(chatID int64, messageID int, text string) {
	if _, err := h.sender.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		apperrors.LogError(h.logger, err, "Failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
	}
}
