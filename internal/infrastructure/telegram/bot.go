package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wekeepgrowing/semo-paybot/internal/config"
	"go.uber.org/zap"
)

var ErrUpdatesClosed = errors.New("telegram update channel closed")

// UpdateHandler processes one update; Bot calls it sequentially.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot runs the long-polling receive loop.
type Bot struct {
	api         *tgbotapi.BotAPI
	source      updateSource
	pollTimeout int
	logger      *zap.Logger
}

// NewBot authenticates the token with getMe before returning.
func NewBot(cfg config.TelegramConfig, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	api.Debug = cfg.Debug

	logger.Info("Authorized on telegram", zap.String("username", api.Self.UserName))

	bot := newBot(api, cfg.PollTimeout, logger)
	bot.api = api
	return bot, nil
}

func newBot(source updateSource, pollTimeout int, logger *zap.Logger) *Bot {
	return &Bot{
		source:      source,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// API returns the client used to send replies.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// Run handles updates one at a time until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, handler UpdateHandler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.source.GetUpdatesChan(u)

	b.logger.Info("Starting telegram bot", zap.Int("poll_timeout", b.pollTimeout))

	for {
		select {
		case <-ctx.Done():
			b.source.StopReceivingUpdates()
			b.logger.Info("Telegram bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return ErrUpdatesClosed
			}
			b.dispatch(ctx, handler, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, handler UpdateHandler, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic while handling update",
				zap.Any("panic", r),
				zap.Int("update_id", update.UpdateID),
			)
		}
	}()

	handler.HandleUpdate(ctx, update)
}
