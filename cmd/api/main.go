package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edutour/discovery/backend/internal/adapters/cache"
	"github.com/edutour/discovery/backend/internal/adapters/catalog"
	"github.com/edutour/discovery/backend/internal/adapters/database"
	"github.com/edutour/discovery/backend/internal/adapters/events"
	"github.com/edutour/discovery/backend/internal/api/handlers"
	"github.com/edutour/discovery/backend/internal/api/middleware"
	"github.com/edutour/discovery/backend/internal/api/routes"
	"github.com/edutour/discovery/backend/internal/application/services"
	"github.com/edutour/discovery/backend/internal/domain/providers"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/postgres"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/redis"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
	"github.com/edutour/discovery/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Logging.Environment, cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Redis is optional: without it the API runs uncached and without events
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	var catalogRepo repositories.CatalogRepository
	var tracker services.SearchTracker
	var analyticsService *services.SearchAnalyticsService

	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		fileAdapter := catalog.NewFileAdapter(cfg.Catalog.FilePath)
		if _, _, err := fileAdapter.Load(ctx); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Catalog.FilePath).Msg("Failed to load catalog file")
		}
		catalogRepo = fileAdapter
		log.Info().Str("path", cfg.Catalog.FilePath).Msg("Serving catalog from file")
	default:
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()

		catalogRepo = database.NewCatalogAdapter(pgClient)
		if cacheProvider != nil {
			cached := database.NewCachedCatalogAdapter(catalogRepo, cacheProvider, cfg.Catalog.CacheTTL, metrics)
			catalogRepo = cached
			log.Info().Dur("ttl", cfg.Catalog.CacheTTL).Msg("Catalog adapter wrapped with caching layer")

			if cfg.Catalog.WarmInterval > 0 {
				services.NewCacheWarmingService(cached).StartPeriodicWarming(ctx, cfg.Catalog.WarmInterval)
			}
		}

		analyticsService = services.NewSearchAnalyticsService(database.NewSearchAnalyticsAdapter(pgClient))
		tracker = analyticsService
		defer analyticsService.Wait()
	}

	var invalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		invalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
			invalidation = nil
		}
	}

	catalogService := services.NewCatalogService(catalogRepo, metrics)
	discoveryService := services.NewDiscoveryService(catalogService, tracker, metrics)

	tourHandler := handlers.NewTourHandler(discoveryService)

	var analyticsHandler *handlers.AnalyticsHandler
	if analyticsService != nil {
		analyticsHandler = handlers.NewAnalyticsHandler(analyticsService)
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(tourHandler, analyticsHandler, cacheMiddleware, cfg.Server.AllowedOrigins, metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("catalog_source", cfg.Catalog.Source).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if invalidation != nil {
		invalidation.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
