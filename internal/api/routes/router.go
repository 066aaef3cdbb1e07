package routes

import (
	"net/http"

	"github.com/edutour/discovery/backend/internal/api/handlers"
	"github.com/edutour/discovery/backend/internal/api/middleware"
	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	tourHandler      *handlers.TourHandler
	analyticsHandler *handlers.AnalyticsHandler

	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. analyticsHandler and cacheMiddleware may be nil.
func NewRouter(
	tourHandler *handlers.TourHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		tourHandler:      tourHandler,
		analyticsHandler: analyticsHandler,
		cacheMiddleware:  cacheMiddleware,
		allowedOrigins:   allowedOrigins,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Catalog endpoints
	r.mux.HandleFunc("GET /api/tours", r.tourHandler.ListTours)
	r.mux.HandleFunc("GET /api/tours/{id}", r.tourHandler.GetTour)
	r.mux.HandleFunc("GET /api/categories", r.tourHandler.ListCategories)
	r.mux.HandleFunc("GET /api/filters", r.tourHandler.GetFilters)
	r.mux.HandleFunc("GET /api/query/default", r.tourHandler.GetDefaultQuery)

	r.mux.HandleFunc("POST /api/favorites/toggle", r.tourHandler.ToggleFavorite)

	if r.analyticsHandler != nil {
		r.mux.HandleFunc("GET /api/analytics/zero-result-queries", r.analyticsHandler.GetZeroResultQueries)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
