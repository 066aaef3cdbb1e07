package services

import (
	"context"
	"time"

	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// CatalogWarmer refreshes cached catalog collections from their source
type CatalogWarmer interface {
	Warm(ctx context.Context) error
}

// CacheWarmingService keeps the catalog cache populated so the first
// request after an import or TTL expiry does not hit the database
type CacheWarmingService struct {
	warmer CatalogWarmer
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(warmer CatalogWarmer) *CacheWarmingService {
	return &CacheWarmingService{warmer: warmer}
}

// WarmCache refreshes the cached catalog once
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	logger := observability.LoggerFromContext(ctx)
	start := time.Now()

	if err := s.warmer.Warm(ctx); err != nil {
		logger.Warn().Err(err).Msg("Catalog cache warming failed")
		return err
	}

	logger.Debug().Dur("duration", time.Since(start)).Msg("Catalog cache warmed")
	return nil
}

// StartPeriodicWarming warms the cache immediately and then on every tick
// until ctx is cancelled. The returned channel is closed once the loop exits.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	_ = s.WarmCache(ctx)

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				observability.GetLogger().Info().Msg("Stopping cache warming service")
				return
			case <-ticker.C:
				_ = s.WarmCache(ctx)
			}
		}
	}()

	observability.GetLogger().Info().Dur("interval", interval).Msg("Started periodic cache warming")
	return done
}
