package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/edutour/discovery/backend/internal/application/services"
	"github.com/edutour/discovery/backend/internal/domain/entities"
)

// DiscoveryService defines the catalog operations used by the handler
type DiscoveryService interface {
	Discover(ctx context.Context, query entities.Query, favorites entities.FavoriteSet) *services.DiscoveryResult
	Categories(ctx context.Context) []entities.CategoryCount
	FilterMetadata(ctx context.Context) services.FilterMetadata
	GetTour(ctx context.Context, id string, favorites entities.FavoriteSet) (*entities.TourCard, error)
	ToggleFavorite(favorites entities.FavoriteSet, tourID string) (entities.FavoriteSet, bool, error)
}

// TourHandler serves the tour catalog
type TourHandler struct {
	service DiscoveryService
}

// NewTourHandler creates a new tour handler
func NewTourHandler(service DiscoveryService) *TourHandler {
	return &TourHandler{
		service: service,
	}
}

// ListTours handles GET /api/tours
func (h *TourHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	result := h.service.Discover(r.Context(), parseQuery(params), parseFavorites(params.Get("favorites")))
	respondWithJSON(w, http.StatusOK, result)
}

// GetTour handles GET /api/tours/{id}
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	tourID := r.PathValue("id")
	if tourID == "" {
		respondWithError(w, http.StatusBadRequest, "tour ID is required")
		return
	}

	card, err := h.service.GetTour(r.Context(), tourID, parseFavorites(r.URL.Query().Get("favorites")))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, card)
}

// ListCategories handles GET /api/categories
func (h *TourHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetFilters handles GET /api/filters
func (h *TourHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.FilterMetadata(r.Context()))
}

// GetDefaultQuery handles GET /api/query/default
func (h *TourHandler) GetDefaultQuery(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, entities.ResetQuery())
}

type toggleFavoriteRequest struct {
	Favorites entities.FavoriteSet `json:"favorites"`
	TourID    string               `json:"tour_id"`
}

type toggleFavoriteResponse struct {
	Favorites  entities.FavoriteSet `json:"favorites"`
	TourID     string               `json:"tour_id"`
	IsFavorite bool                 `json:"is_favorite"`
}

// ToggleFavorite handles POST /api/favorites/toggle. The favorite set is
// owned by the client and echoed back; nothing is stored.
func (h *TourHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var payload toggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	tourID := strings.TrimSpace(payload.TourID)
	favorites, isFavorite, err := h.service.ToggleFavorite(payload.Favorites, tourID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toggleFavoriteResponse{
		Favorites:  favorites,
		TourID:     tourID,
		IsFavorite: isFavorite,
	})
}

// parseQuery builds a Query from URL parameters on top of the defaults.
// Unknown enum values are left for the engine to normalize, and a price
// that is not a finite number keeps its default bound. The search text is
// passed through untouched.
func parseQuery(params url.Values) entities.Query {
	query := entities.ResetQuery()

	if v := params.Get("q"); v != "" {
		query = query.WithSearchText(v)
	}
	if v := params.Get("category"); v != "" {
		query = query.WithCategory(v)
	}
	if v := params.Get("duration"); v != "" {
		query = query.WithDurationBucket(entities.DurationBucket(v))
	}
	if v := params.Get("sort"); v != "" {
		query = query.WithSortKey(entities.SortKey(v))
	}

	return query.WithPriceRange(
		parsePrice(params.Get("min_price"), query.PriceRange.Min),
		parsePrice(params.Get("max_price"), query.PriceRange.Max),
	)
}

func parsePrice(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(value, 0) {
		return fallback
	}
	return value
}

// parseFavorites reads a comma separated list of tour IDs
func parseFavorites(raw string) entities.FavoriteSet {
	if raw == "" {
		return entities.FavoriteSet{}
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return entities.NewFavoriteSet(parts...)
}
