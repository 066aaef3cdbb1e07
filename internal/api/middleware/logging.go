package middleware

import (
	"net/http"
	"time"

	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// LoggingMiddleware logs one line per request. Server errors log at error
// level and client errors at warn.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		logger := observability.LoggerFromContext(r.Context())
		event := logger.Info()
		switch {
		case sw.status >= http.StatusInternalServerError:
			event = logger.Error()
		case sw.status >= http.StatusBadRequest:
			event = logger.Warn()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
