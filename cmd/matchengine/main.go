// cmd/matchengine/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"matchengine/internal/common/config"
	"matchengine/internal/common/database"
	"matchengine/internal/common/logger"
	"matchengine/internal/common/observability"
	"matchengine/internal/geo"
	"matchengine/internal/httpapi"
	"matchengine/internal/notify"
	"matchengine/internal/savedsearch"
	"matchengine/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	zapLog.Info("Starting matching engine...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("matchengine")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Geocoding ---
	var resolver geo.Resolver = geo.NewGeocoder(geo.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   time.Duration(cfg.Geocoder.TimeoutMS) * time.Millisecond,
	}, log)
	if cfg.Geocoder.CacheEnabled {
		ttl := time.Duration(cfg.Geocoder.CacheTTLMin) * time.Minute
		resolver = geo.NewCachedResolver(resolver, redis.Client, ttl, log)
	}

	// --- Stores ---
	profileStore := store.NewProfileStore(pg.DB)
	jobStore := store.NewJobStore(pg.DB)
	searchStore := store.NewSavedSearchStore(pg.DB)
	userStore := store.NewUserStore(pg.DB)

	// --- Notifier ---
	notifier, err := notify.NewSender(ctx, &cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier initialization failed", zap.Error(err))
	}

	// --- Saved-search service ---
	searchService := savedsearch.NewService(
		searchStore, profileStore, userStore, notifier,
		log, obs, cfg.Matching.RepresentativeMatches,
	)

	// --- HTTP server ---
	server := httpapi.NewServer(cfg, log, profileStore, jobStore, resolver, searchService)

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.Listen(cfg.Server.Address); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Wait for shutdown signal ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	zapLog.Info("Shutting down...", zap.String("signal", sig.String()))
	if err := server.Shutdown(); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
