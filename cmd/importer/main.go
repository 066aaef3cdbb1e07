package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edutour/discovery/backend/internal/adapters/catalog"
	"github.com/edutour/discovery/backend/internal/adapters/database"
	"github.com/edutour/discovery/backend/internal/adapters/events"
	"github.com/edutour/discovery/backend/internal/application/services"
	"github.com/edutour/discovery/backend/internal/domain/providers"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/postgres"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/redis"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
	"github.com/edutour/discovery/backend/pkg/config"
)

func main() {
	var filePath string
	var intervalFlag string
	var dryRun bool
	flag.StringVar(&filePath, "file", "", "catalog JSON document to import (defaults to CATALOG_FILE)")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for re-importing (e.g. 1h, 15m)")
	flag.BoolVar(&dryRun, "dry-run", false, "validate the document without writing to the database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("tour-importer", cfg.Logging.Environment, cfg.Logging.Level)

	if strings.TrimSpace(filePath) == "" {
		filePath = cfg.Catalog.FilePath
	}

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("IMPORT_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if dryRun {
		tours, categories, err := catalog.NewFileAdapter(filePath).Load(ctx)
		if err != nil {
			log.Fatal().Err(err).Str("path", filePath).Msg("Catalog document is invalid")
		}
		log.Info().Int("tours", len(tours)).Int("categories", len(categories)).Msg("Catalog document is valid")
		return
	}

	for {
		if err := importOnce(ctx, cfg, filePath); err != nil {
			log.Error().Err(err).Str("path", filePath).Msg("Import failed")
			if interval <= 0 {
				os.Exit(1)
			}
		}

		if interval <= 0 {
			break
		}

		log.Info().Dur("next_run_in", interval).Msg("Import complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Importer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func importOnce(ctx context.Context, cfg *config.Config, filePath string) error {
	tours, categories, err := catalog.NewFileAdapter(filePath).Load(ctx)
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, caches will expire by TTL")
		} else {
			defer redisClient.Close()
			bus := events.NewRedisEventBus(redisClient)
			defer bus.Close()
			eventBus = bus
		}
	}

	importer := services.NewCatalogImportService(database.NewCatalogAdapter(pgClient), eventBus)
	event, err := importer.Import(ctx, tours, categories)
	if err != nil {
		return err
	}

	log.Info().
		Str("event_id", event.ID).
		Int("tours", event.TourCount).
		Int("categories", event.CategoryCount).
		Msg("Catalog replaced")
	return nil
}
