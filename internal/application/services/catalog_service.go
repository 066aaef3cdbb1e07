package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

// CatalogService exposes the full, unfiltered catalog. A failing backing
// source is logged and reported as an empty catalog.
type CatalogService struct {
	repo    repositories.CatalogRepository
	metrics *observability.Metrics
}

// NewCatalogService creates a new catalog service. metrics may be nil.
func NewCatalogService(repo repositories.CatalogRepository, metrics *observability.Metrics) *CatalogService {
	return &CatalogService{
		repo:    repo,
		metrics: metrics,
	}
}

// GetTours returns every tour, or an empty slice when the source fails
func (s *CatalogService) GetTours(ctx context.Context) []entities.Tour {
	ctx, span := observability.StartSpan(ctx, "CatalogService.GetTours")
	defer span.End()

	start := time.Now()
	tours, err := s.repo.ListTours(ctx)
	observability.RecordCatalogLoad(ctx, s.metrics, "tours", time.Since(start))
	if err != nil {
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Catalog source unavailable, serving no tours")
		return []entities.Tour{}
	}
	if tours == nil {
		tours = []entities.Tour{}
	}

	observability.SetSpanAttributes(span, attribute.Int("catalog.tours", len(tours)))
	return tours
}

// GetCategories returns every category, or an empty slice when the source fails
func (s *CatalogService) GetCategories(ctx context.Context) []entities.Category {
	ctx, span := observability.StartSpan(ctx, "CatalogService.GetCategories")
	defer span.End()

	start := time.Now()
	categories, err := s.repo.ListCategories(ctx)
	observability.RecordCatalogLoad(ctx, s.metrics, "categories", time.Since(start))
	if err != nil {
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Catalog source unavailable, serving no categories")
		return []entities.Category{}
	}
	if categories == nil {
		categories = []entities.Category{}
	}

	observability.SetSpanAttributes(span, attribute.Int("catalog.categories", len(categories)))
	return categories
}

// GetTour returns a single tour by ID
func (s *CatalogService) GetTour(ctx context.Context, id string) (*entities.Tour, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("tour id is required")
	}

	for _, t := range s.GetTours(ctx) {
		if t.ID == id {
			tour := t
			return &tour, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("tour with id %s not found", id))
}
