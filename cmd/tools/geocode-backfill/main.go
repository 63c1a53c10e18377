// cmd/tools/geocode-backfill/main.go
//
// One-shot tool: geocode every active job that has a street-level location
// but no stored coordinates, and persist the results. Jobs with
// remote/anywhere/blank locations are never selected.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"matchengine/internal/common/config"
	"matchengine/internal/common/database"
	"matchengine/internal/common/logger"
	"matchengine/internal/geo"
	"matchengine/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pg.Close()

	resolver := geo.NewGeocoder(geo.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   time.Duration(cfg.Geocoder.TimeoutMS) * time.Millisecond,
	}, log)

	jobStore := store.NewJobStore(pg.DB)
	jobs, err := jobStore.JobsMissingCoordinates(ctx)
	if err != nil {
		zapLog.Fatal("loading jobs failed", zap.Error(err))
	}

	zapLog.Info("Starting geocode backfill", zap.Int("jobs", len(jobs)))

	resolved, skipped := 0, 0
	for _, job := range jobs {
		coord, ok := resolver.Resolve(ctx, job.Location)
		if !ok {
			skipped++
			zapLog.Warn("location not resolved",
				zap.String("jobId", job.ID),
				zap.String("location", job.Location),
			)
			continue
		}

		if err := jobStore.SetCoordinates(ctx, job.ID, coord.Latitude, coord.Longitude); err != nil {
			zapLog.Error("persisting coordinates failed",
				zap.String("jobId", job.ID),
				zap.Error(err),
			)
			continue
		}
		resolved++

		// Nominatim usage policy: at most one request per second.
		time.Sleep(time.Second)
	}

	zapLog.Info("Geocode backfill complete",
		zap.Int("resolved", resolved),
		zap.Int("skipped", skipped),
	)
}
