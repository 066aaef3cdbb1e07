package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/edutour/discovery/backend/internal/domain/entities"
)

const maxZeroResultLimit = 500

// SearchAnalyticsService defines the analytics reads used by the handler
type SearchAnalyticsService interface {
	GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error)
}

// AnalyticsHandler exposes search analytics
type AnalyticsHandler struct {
	service SearchAnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service SearchAnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetZeroResultQueries handles GET /api/analytics/zero-result-queries
func (h *AnalyticsHandler) GetZeroResultQueries(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxZeroResultLimit {
		limit = maxZeroResultLimit
	}

	events, err := h.service.GetZeroResultQueries(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": events,
		"count":   len(events),
	})
}
