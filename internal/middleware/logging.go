package middleware

import (
	"bytes"
	"net/http"

	"crypto-dashboard-service/internal/logger"
)

// loggingResponseWriter wraps http.ResponseWriter to capture response data
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rw *loggingResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *loggingResponseWriter) Write(data []byte) (int, error) {
	// Only capture small responses
	if rw.body != nil && len(data) < 1024 {
		rw.body.Write(data)
	}
	return rw.ResponseWriter.Write(data)
}

// LoggingMiddleware provides structured logging for HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Add request ID and start time to context
		ctx := logger.WithRequestID(r.Context())
		ctx = logger.WithStartTime(ctx)
		r = r.WithContext(ctx)

		logger.LogHTTPRequest(ctx, r.Method, r.URL.Path, r.UserAgent(), r.RemoteAddr)

		wrapped := &loggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           new(bytes.Buffer),
		}

		next.ServeHTTP(wrapped, r)

		logger.LogHTTPResponse(ctx, wrapped.statusCode, int64(wrapped.body.Len()))
	})
}
