package main

import (
	"context"
	"log"
	"os"

	"github.com/stripe/stripe-go/v79/client"
	"github.com/wekeepgrowing/semo-paybot/internal/config"
	"github.com/wekeepgrowing/semo-paybot/pkg/logger"
	"go.uber.org/zap"
)

// check-prices verifies that every configured product points at an active
// recurring Stripe price before the bot is deployed.
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

	catalog, err := cfg.Catalog()
	if err != nil {
		zapLogger.Fatal("Failed to build product catalog", zap.Error(err))
	}

	sc := &client.API{}
	sc.Init(cfg.Service.StripeSecretKey, nil)

	reports, failed := checkPrices(context.Background(), sc.Prices, catalog, zapLogger)

	zapLogger.Info("Price check completed",
		zap.Int("checked", len(reports)),
		zap.Int("failed", failed))

	if failed > 0 {
		zapLogger.Sync()
		os.Exit(1)
	}
}
