package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

// DiscoveryResult is one evaluation of the catalog, ready for rendering.
// Empty is true when no tour matched, which callers render as the
// "no tours found" state with a reset action.
type DiscoveryResult struct {
	Tours []entities.TourCard `json:"tours"`
	Count int                 `json:"count"`
	Empty bool                `json:"empty"`
	Query entities.Query      `json:"query"`
}

// DiscoveryService evaluates queries against the current catalog
type DiscoveryService struct {
	catalog *CatalogService
	tracker SearchTracker
	metrics *observability.Metrics
}

// NewDiscoveryService creates a new discovery service. tracker and metrics
// may be nil.
func NewDiscoveryService(catalog *CatalogService, tracker SearchTracker, metrics *observability.Metrics) *DiscoveryService {
	return &DiscoveryService{
		catalog: catalog,
		tracker: tracker,
		metrics: metrics,
	}
}

// Discover loads the catalog, evaluates query and marks favorites
func (s *DiscoveryService) Discover(ctx context.Context, query entities.Query, favorites entities.FavoriteSet) *DiscoveryResult {
	ctx, span := observability.StartSpan(ctx, "DiscoveryService.Discover")
	defer span.End()

	start := time.Now()
	tours := s.catalog.GetTours(ctx)
	categories := s.catalog.GetCategories(ctx)

	resolved := ResolveQuery(query, categories)
	matched := Evaluate(tours, categories, resolved)
	latency := time.Since(start)

	observability.SetSpanAttributes(span,
		attribute.String("query.category", resolved.CategoryID),
		attribute.String("query.sort", string(resolved.SortKey)),
		attribute.Int("result.count", len(matched)),
	)

	if len(matched) == 0 {
		observability.RecordZeroResult(ctx, s.metrics, resolved.CategoryID)
	}
	if s.tracker != nil {
		s.tracker.TrackSearch(ctx, entities.NewSearchEvent(resolved, len(matched), latency))
	}

	return &DiscoveryResult{
		Tours: DecorateTours(matched, favorites),
		Count: len(matched),
		Empty: len(matched) == 0,
		Query: resolved,
	}
}

// Categories returns the category set with live tour counts
func (s *DiscoveryService) Categories(ctx context.Context) []entities.CategoryCount {
	return CategoryCounts(s.catalog.GetTours(ctx), s.catalog.GetCategories(ctx))
}

// FilterMetadata returns the facets for the current catalog
func (s *DiscoveryService) FilterMetadata(ctx context.Context) FilterMetadata {
	return BuildFilterMetadata(s.catalog.GetTours(ctx), s.catalog.GetCategories(ctx))
}

// GetTour returns a single tour decorated with its favorite flag
func (s *DiscoveryService) GetTour(ctx context.Context, id string, favorites entities.FavoriteSet) (*entities.TourCard, error) {
	tour, err := s.catalog.GetTour(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.TourCard{Tour: *tour, IsFavorite: favorites.Contains(tour.ID)}, nil
}

// ToggleFavorite returns favorites with tourID flipped and its new membership
func (s *DiscoveryService) ToggleFavorite(favorites entities.FavoriteSet, tourID string) (entities.FavoriteSet, bool, error) {
	if tourID == "" {
		return favorites, false, apperrors.NewValidationError("tour_id is required")
	}
	next := entities.ToggleFavorite(favorites, tourID)
	return next, entities.IsFavorite(next, tourID), nil
}
