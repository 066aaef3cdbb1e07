package services

import (
	"context"
	"sync"
	"time"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// SearchTracker records catalog evaluations
type SearchTracker interface {
	TrackSearch(ctx context.Context, event *entities.SearchEvent)
}

type SearchAnalyticsService struct {
	repo repositories.SearchAnalyticsRepository
	wg   sync.WaitGroup
}

func NewSearchAnalyticsService(repo repositories.SearchAnalyticsRepository) *SearchAnalyticsService {
	return &SearchAnalyticsService{repo: repo}
}

// TrackSearch logs the event in the background so the request is not blocked
func (s *SearchAnalyticsService) TrackSearch(ctx context.Context, event *entities.SearchEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// The request context may already be cancelled.
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.LogEvent(bgCtx, event); err != nil {
			observability.GetLogger().Warn().Err(err).Msg("Failed to log search event")
		}
	}()
}

// Wait blocks until every pending event has been written
func (s *SearchAnalyticsService) Wait() {
	s.wg.Wait()
}

func (s *SearchAnalyticsService) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	return s.repo.GetZeroResultQueries(ctx, limit)
}
