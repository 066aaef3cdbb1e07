package services

import (
	"context"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/providers"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// CatalogImportService replaces the stored catalog and announces the change
type CatalogImportService struct {
	writer   repositories.CatalogWriter
	eventBus providers.EventBus
}

// NewCatalogImportService creates a new import service. eventBus may be nil,
// in which case caches expire by TTL only.
func NewCatalogImportService(writer repositories.CatalogWriter, eventBus providers.EventBus) *CatalogImportService {
	return &CatalogImportService{
		writer:   writer,
		eventBus: eventBus,
	}
}

// Import stores tours and categories and publishes a catalog_imported event.
// A publish failure is logged; the import itself has already succeeded.
func (s *CatalogImportService) Import(ctx context.Context, tours []entities.Tour, categories []entities.Category) (*entities.CatalogEvent, error) {
	if err := s.writer.ReplaceCatalog(ctx, tours, categories); err != nil {
		return nil, err
	}

	event := entities.NewCatalogEvent(entities.CatalogEventTypeImported, len(tours), len(categories))
	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Int("tours", event.TourCount).
		Int("categories", event.CategoryCount).
		Msg("Catalog imported")

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, providers.EventChannelCatalogUpdates, event); err != nil {
			logger.Warn().Err(err).Msg("Failed to publish catalog event")
		}
	}
	return event, nil
}
