package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/providers"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// Cache keys for catalog collections. CacheInvalidationService clears
// everything under CatalogCachePattern when the catalog changes.
const (
	CatalogCachePattern   = "catalog:*"
	toursCacheKey         = "catalog:tours"
	categoriesCacheKey    = "catalog:categories"
	defaultCatalogTTLSecs = 300
)

// CachedCatalogAdapter wraps a CatalogRepository with read-through caching
type CachedCatalogAdapter struct {
	adapter repositories.CatalogRepository
	cache   providers.CacheProvider
	ttl     int
	metrics *observability.Metrics
}

var _ repositories.CatalogRepository = (*CachedCatalogAdapter)(nil)

// NewCachedCatalogAdapter creates a new cached catalog adapter. A non-positive
// ttl falls back to five minutes.
func NewCachedCatalogAdapter(adapter repositories.CatalogRepository, cache providers.CacheProvider, ttl time.Duration, metrics *observability.Metrics) *CachedCatalogAdapter {
	ttlSeconds := int(ttl.Seconds())
	if ttlSeconds <= 0 {
		ttlSeconds = defaultCatalogTTLSecs
	}
	return &CachedCatalogAdapter{
		adapter: adapter,
		cache:   cache,
		ttl:     ttlSeconds,
		metrics: metrics,
	}
}

// ListTours returns tours from cache, falling back to the wrapped repository
func (a *CachedCatalogAdapter) ListTours(ctx context.Context) ([]entities.Tour, error) {
	var tours []entities.Tour
	if a.readCache(ctx, toursCacheKey, &tours) {
		return tours, nil
	}

	tours, err := a.adapter.ListTours(ctx)
	if err != nil {
		return nil, err
	}

	a.writeCache(toursCacheKey, tours)
	return tours, nil
}

// ListCategories returns categories from cache, falling back to the wrapped repository
func (a *CachedCatalogAdapter) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var categories []entities.Category
	if a.readCache(ctx, categoriesCacheKey, &categories) {
		return categories, nil
	}

	categories, err := a.adapter.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	a.writeCache(categoriesCacheKey, categories)
	return categories, nil
}

// Warm loads the catalog from the wrapped repository and stores both
// collections before returning
func (a *CachedCatalogAdapter) Warm(ctx context.Context) error {
	tours, err := a.adapter.ListTours(ctx)
	if err != nil {
		return err
	}
	categories, err := a.adapter.ListCategories(ctx)
	if err != nil {
		return err
	}

	for key, value := range map[string]interface{}{
		toursCacheKey:      tours,
		categoriesCacheKey: categories,
	} {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if err := a.cache.Set(ctx, key, data, a.ttl); err != nil {
			return err
		}
	}
	return nil
}

func (a *CachedCatalogAdapter) readCache(ctx context.Context, key string, dest interface{}) bool {
	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("Catalog cache read failed")
		}
		observability.RecordCacheMiss(ctx, a.metrics, key)
		return false
	}

	if err := json.Unmarshal(cached, dest); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached catalog")
		observability.RecordCacheMiss(ctx, a.metrics, key)
		return false
	}

	observability.RecordCacheHit(ctx, a.metrics, key)
	return true
}

// writeCache stores value asynchronously to avoid blocking the response
func (a *CachedCatalogAdapter) writeCache(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		observability.GetLogger().Warn().Err(err).Str("key", key).Msg("Failed to marshal catalog for cache")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.cache.Set(ctx, key, data, a.ttl); err != nil {
			observability.GetLogger().Warn().Err(err).Str("key", key).Msg("Failed to cache catalog")
		}
	}()
}
