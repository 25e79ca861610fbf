package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/wekeepgrowing/semo-paybot/internal/adapter/handler/http"
	"github.com/wekeepgrowing/semo-paybot/internal/adapter/handler/telegram"
	"github.com/wekeepgrowing/semo-paybot/internal/config"
	grpcServer "github.com/wekeepgrowing/semo-paybot/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/semo-paybot/internal/infrastructure/http"
	"github.com/wekeepgrowing/semo-paybot/internal/infrastructure/provider"
	telegramBot "github.com/wekeepgrowing/semo-paybot/internal/infrastructure/telegram"
	"github.com/wekeepgrowing/semo-paybot/internal/usecase"
	"github.com/wekeepgrowing/semo-paybot/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger = zapLogger.With(
		zap.String("service", cfg.Service.Name),
		zap.String("env", cfg.Service.Environment),
	)

	catalog, err := cfg.Catalog()
	if err != nil {
		zapLogger.Fatal("Failed to build product catalog", zap.Error(err))
	}

	// Payment provider
	paymentProvider, err := provider.NewFactory(cfg, zapLogger).GetProviderFromString(cfg.Service.PaymentProvider)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment provider", zap.Error(err))
	}

	// Usecases
	checkoutUsecase := usecase.NewCheckoutUsecase(catalog, paymentProvider, cfg.Service.ServerURL, zapLogger)
	webhookUsecase := usecase.NewWebhookUsecase(zapLogger)

	// Chat front end
	bot, err := telegramBot.NewBot(cfg.Telegram, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize telegram bot", zap.Error(err))
	}
	botHandler := telegram.NewBotHandler(bot.API(), checkoutUsecase, catalog, zapLogger)

	// HTTP server
	httpSrv, err := httpServer.NewServer(cfg, zapLogger,
		handlers.NewWebhookHandler(zapLogger, paymentProvider, webhookUsecase),
		handlers.NewPagesHandler(),
	)
	if err != nil {
		zapLogger.Fatal("Failed to initialize HTTP server", zap.Error(err))
	}

	var grpcSrv *grpcServer.Server
	if cfg.Server.GRPC.Enabled() {
		grpcSrv = grpcServer.NewServer(cfg, zapLogger)
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(gctx, botHandler)
	})

	g.Go(httpSrv.Start)

	if grpcSrv != nil {
		g.Go(grpcSrv.Start)
	}

	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if grpcSrv != nil {
			if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
				zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
			}
		}

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
