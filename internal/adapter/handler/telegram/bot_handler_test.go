package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-paybot/internal/domain/errors"
	"github.com/wekeepgrowing/semo-paybot/internal/usecase"
	apperrors "github.com/wekeepgrowing/semo-paybot/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockSender is a mock implementation of the Bot API client
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func (m *MockSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return &tgbotapi.APIResponse{Ok: true}, args.Error(0)
}

// MockCheckoutStarter is a mock implementation of CheckoutStarter
type MockCheckoutStarter struct {
	mock.Mock
}

func (m *MockCheckoutStarter) StartCheckout(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CheckoutResult), args.Error(1)
}

func newTestHandler(t *testing.T) (*BotHandler, *MockSender, *MockCheckoutStarter, *observer.ObservedLogs) {
	t.Helper()

	catalog, err := entity.NewCatalog([]entity.Product{
		{Name: "Arbitrage base", PriceID: "price_base"},
		{Name: "Arbitrage start", PriceID: "price_start"},
	})
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	sender := new(MockSender)
	checkout := new(MockCheckoutStarter)
	return NewBotHandler(sender, checkout, catalog, zap.New(core)), sender, checkout, logs
}

func commandUpdate(chatID int64, command string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      command,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(command)},
			},
		},
	}
}

func callbackUpdate(chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cbq-1",
			From: &tgbotapi.User{ID: 42},
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: messageID,
				Chat:      &tgbotapi.Chat{ID: chatID},
			},
		},
	}
}

func isEdit(chatID int64, messageID int, text string) interface{} {
	return mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		edit, ok := c.(tgbotapi.EditMessageTextConfig)
		return ok && edit.ChatID == chatID && edit.MessageID == messageID && edit.Text == text
	})
}

func TestHandleUpdate_Start(t *testing.T) {
	h, sender, _, _ := newTestHandler(t)
	sender.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		return ok && msg.ChatID == 100 && msg.Text == welcomeText
	})).Return(nil).Once()

	h.HandleUpdate(context.Background(), commandUpdate(100, "/start"))

	sender.AssertExpectations(t)
}

func TestHandleUpdate_ChooseProductListsCatalogInOrder(t *testing.T) {
	h, sender, _, _ := newTestHandler(t)

	var sent tgbotapi.MessageConfig
	sender.On("Send", mock.AnythingOfType("tgbotapi.MessageConfig")).
		Run(func(args mock.Arguments) { sent = args.Get(0).(tgbotapi.MessageConfig) }).
		Return(nil).Once()

	h.HandleUpdate(context.Background(), commandUpdate(100, "/choose_product"))

	sender.AssertExpectations(t)
	assert.Equal(t, chooseProductText, sent.Text)

	markup, ok := sent.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "Arbitrage base", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "Arbitrage base", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "Arbitrage start", *markup.InlineKeyboard[1][0].CallbackData)
}

func TestHandleUpdate_UnknownCommandIgnored(t *testing.T) {
	h, sender, _, logs := newTestHandler(t)

	h.HandleUpdate(context.Background(), commandUpdate(100, "/help"))

	sender.AssertNotCalled(t, "Send", mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("Ignoring unknown command").Len())
}

func TestHandleUpdate_SelectionSendsPaymentLink(t *testing.T) {
	h, sender, checkout, _ := newTestHandler(t)

	checkout.On("StartCheckout", mock.Anything, usecase.CheckoutRequest{
		ProductName: "Arbitrage start",
		UserID:      42,
		ChatID:      100,
	}).Return(&usecase.CheckoutResult{
		Product:   entity.Product{Name: "Arbitrage start", PriceID: "price_start"},
		SessionID: "cs_test_1",
		URL:       "https://checkout.stripe.com/c/pay/cs_test_1",
	}, nil).Once()

	sender.On("Request", mock.AnythingOfType("tgbotapi.CallbackConfig")).Return(nil).Once()
	sender.On("Send", isEdit(100, 7,
		"You chose: Arbitrage start\nHere is your payment link: https://checkout.stripe.com/c/pay/cs_test_1\n\nPay to complete your order.",
	)).Return(nil).Once()

	h.HandleUpdate(context.Background(), callbackUpdate(100, 7, "Arbitrage start"))

	checkout.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestHandleUpdate_SelectionNotFound(t *testing.T) {
	h, sender, checkout, _ := newTestHandler(t)

	checkout.On("StartCheckout", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(apperrors.ErrNotFound, "product not found", domainErrors.ErrProductNotFound)).Once()
	sender.On("Request", mock.Anything).Return(nil).Once()
	sender.On("Send", isEdit(100, 7, notFoundText)).Return(nil).Once()

	h.HandleUpdate(context.Background(), callbackUpdate(100, 7, "Unknown"))

	sender.AssertExpectations(t)
}

func TestHandleUpdate_SelectionProviderErrorShownInChat(t *testing.T) {
	h, sender, checkout, logs := newTestHandler(t)

	checkout.On("StartCheckout", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "No such price: 'price_start'",
			domainErrors.ErrCheckoutSessionFailed)).Once()
	sender.On("Request", mock.Anything).Return(nil).Once()
	sender.On("Send", isEdit(100, 7,
		"An error occurred while creating the payment session: No such price: 'price_start'",
	)).Return(nil).Once()

	h.HandleUpdate(context.Background(), callbackUpdate(100, 7, "Arbitrage start"))

	sender.AssertExpectations(t)
	entries := logs.FilterMessage("Checkout failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestHandleUpdate_SendFailureIsLogged(t *testing.T) {
	h, sender, checkout, logs := newTestHandler(t)

	checkout.On("StartCheckout", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()
	sender.On("Request", mock.Anything).Return(errors.New("timeout")).Once()
	sender.On("Send", isEdit(100, 7,
		"An error occurred while creating the payment session: connection reset",
	)).Return(errors.New("bad request")).Once()

	assert.NotPanics(t, func() {
		h.HandleUpdate(context.Background(), callbackUpdate(100, 7, "Arbitrage base"))
	})

	sender.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Failed to answer callback query").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to edit message").Len())
}

func TestHandleUpdate_CallbackWithoutMessage(t *testing.T) {
	h, sender, checkout, _ := newTestHandler(t)

	update := callbackUpdate(100, 7, "Arbitrage base")
	update.CallbackQuery.Message = nil
	sender.On("Request", mock.Anything).Return(nil).Once()

	h.HandleUpdate(context.Background(), update)

	checkout.AssertNotCalled(t, "StartCheckout", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}
