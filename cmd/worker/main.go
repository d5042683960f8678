package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"greengrass/internal/app"
	"greengrass/internal/catalog"
	"greengrass/internal/checkout"
	"greengrass/internal/config"
	"greengrass/internal/logger"
	"greengrass/internal/payments"
	"greengrass/internal/realtime"
	"greengrass/internal/storefront"
	"greengrass/internal/worker"
	"greengrass/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.NewWithConfig(logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize: %v", err)
	}
	defer a.Close()

	categories := catalog.NewCategoryService(a.DB.DB)
	products := catalog.NewProductService(a.DB.DB)
	checkoutService := checkout.NewService(a.Store, products, payments.NewService(a.Store, logger), checkout.Pricing{
		TaxRate:               cfg.TaxRate,
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}, logger)
	snapshots := storefront.New(a.Redis, cfg.SettingsCacheTTL, a.Store, categories, products, checkoutService, logger)

	var cache processors.Invalidator
	if a.Cache != nil {
		cache = a.Cache
	}
	processor := processors.NewEventProcessor(cache, snapshots, logger)

	if err := processor.Resync(ctx); err != nil {
		logger.Warn("Initial snapshot build failed: %v", err)
	}

	if a.DB.IsPostgres() {
		listener := realtime.NewListener(cfg.DatabaseURL, processor, logger)
		go func() {
			if err := listener.Run(ctx); err != nil {
				logger.Error("Postgres listener stopped: %v", err)
			}
		}()
	}

	// Initialize worker
	w := worker.New(cfg, processor, logger)

	logger.Info("Starting worker...")
	go w.Start(ctx)

	<-ctx.Done()

	logger.Info("Shutting down worker...")
	w.Stop()
}
