package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/providers"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// Cache key patterns derived from catalog content
var catalogCachePatterns = []string{
	"catalog:*",
	"http:cache:*",
}

// CacheInvalidationService drops catalog-derived caches when a catalog event arrives
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for catalog events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCatalogUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to catalog updates: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the service and waits for the event loop to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
	observability.GetLogger().Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.CatalogEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.CatalogEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger()
	logger.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Int("tours", event.TourCount).
		Msg("Processing catalog cache invalidation")

	if err := s.InvalidateCatalog(ctx); err != nil {
		logger.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to invalidate catalog caches")
	}
}

// InvalidateCatalog removes cached catalog collections and cached API responses
func (s *CacheInvalidationService) InvalidateCatalog(ctx context.Context) error {
	for _, pattern := range catalogCachePatterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
		observability.GetLogger().Debug().Str("pattern", pattern).Msg("Invalidated cache pattern")
	}
	return nil
}
