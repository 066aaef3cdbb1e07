package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/edutour/discovery/backend/internal/infrastructure/observability"
)

// discoveryParams are the tour listing parameters copied onto request spans
var discoveryParams = []string{"q", "category", "duration", "sort", "min_price", "max_price"}

// ObservabilityMiddleware starts a span per request and records request metrics
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeLabel(r.URL.Path)

			ctx, span := observability.StartSpan(r.Context(), r.Method+" "+route)
			defer span.End()

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.user_agent", r.UserAgent()),
			}
			if strings.HasPrefix(r.URL.Path, "/api/tours") {
				query := r.URL.Query()
				for _, name := range discoveryParams {
					if v := query.Get(name); v != "" {
						attrs = append(attrs, attribute.String("discovery."+name, v))
					}
				}
			}
			observability.SetSpanAttributes(span, attrs...)

			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r.WithContext(ctx))

			observability.RecordRequestMetric(ctx, metrics, r.Method, route, sw.status, time.Since(start))
			observability.SetSpanAttributes(span, attribute.Int("http.status_code", sw.status))
		})
	}
}

// routeLabel collapses tour detail paths so span names and metric labels
// stay low-cardinality
func routeLabel(path string) string {
	if id, ok := strings.CutPrefix(path, "/api/tours/"); ok && id != "" {
		return "/api/tours/{id}"
	}
	return path
}

// statusWriter remembers the status code written by the wrapped handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
