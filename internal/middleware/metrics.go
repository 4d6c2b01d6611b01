package middleware

import (
	"net/http"
	"strings"
	"time"

	"crypto-dashboard-service/internal/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records HTTP request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		metrics.RecordHTTPRequest(
			r.Method,
			getEndpoint(r.URL.Path),
			wrapped.statusCode,
			time.Since(start),
		)
	})
}

// getEndpoint normalizes URL paths to avoid high cardinality in metrics
func getEndpoint(path string) string {
	switch path {
	case "/api/v1/dashboard",
		"/api/v1/dashboard/current",
		"/api/v1/coins",
		"/api/v1/preferences/theme",
		"/health",
		"/metrics",
		"/ws":
		return path
	default:
		if strings.HasPrefix(path, "/swagger") {
			return "/swagger"
		}
		return "/unknown"
	}
}
