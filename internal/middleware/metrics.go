package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/metrics"
)

// Metrics records status codes and per-route latency. The route label is the
// chi pattern, not the raw path, to keep cardinality bounded.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			collector.RecordHTTPStatus(rw.statusCode)
			collector.RecordHTTPLatency(route, time.Since(start))
		})
	}
}
