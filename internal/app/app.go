package app

import (
	"context"
	"fmt"

	"greengrass/internal/config"
	"greengrass/internal/database"
	"greengrass/internal/events"
	"greengrass/internal/logger"
	"greengrass/internal/settings"

	"github.com/go-redis/redis/v8"
)

// App holds the connections shared by the API and the worker.
type App struct {
	DB        *database.Database
	Redis     *redis.Client
	Cache     *settings.CachedStore
	Store     settings.Store
	Publisher events.Publisher
}

// Open connects to the database, runs migrations and assembles the settings
// store chain. Redis and Kafka are optional: an unreachable Redis disables
// caching, and no brokers means change events are dropped.
func Open(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*App, error) {
	db, err := database.New(cfg.DatabaseURL, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	a := &App{DB: db}

	var base settings.Store = settings.NewGormStore(db.DB)
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceRoleKey != "" {
		hosted, err := settings.NewPostgrestStore(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create settings store: %w", err)
		}
		logger.Info("Using hosted settings store at %s", cfg.SupabaseURL)
		base = hosted
	}

	if cfg.RedisURL != "" {
		rdb, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, settings cache disabled: %v", err)
		} else {
			a.Redis = rdb
			a.Cache = settings.NewCachedStore(base, rdb, cfg.SettingsCacheTTL, logger)
			base = a.Cache
		}
	}

	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		a.Publisher = events.NewKafkaPublisher(brokers, cfg.KafkaTopic, logger)
	} else {
		a.Publisher = events.NopPublisher{}
	}

	a.Store = settings.NewPublishingStore(base, a.Publisher, logger)
	return a, nil
}

func (a *App) Close() {
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
