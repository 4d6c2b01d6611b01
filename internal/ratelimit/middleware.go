package ratelimit

import (
	"encoding/json"
	"net/http"

	"crypto-dashboard-service/internal/config"
	"crypto-dashboard-service/internal/logger"
)

// Middleware applies a shared token bucket to inbound API requests.
// Health, metrics and documentation endpoints are never limited.
type Middleware struct {
	bucket    *TokenBucket
	skipPaths map[string]bool
	enabled   bool
}

// NewMiddleware creates the rate limiting middleware from configuration.
func NewMiddleware(cfg config.RateLimitConfig) *Middleware {
	m := &Middleware{
		enabled: cfg.Enabled,
		skipPaths: map[string]bool{
			"/health":  true,
			"/metrics": true,
		},
	}
	if cfg.Enabled {
		m.bucket = NewTokenBucket(cfg.Capacity, cfg.RefillRate, cfg.RefillPeriod)
	}
	return m
}

// Handler wraps the next handler with rate limiting.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	if !m.enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		if !m.bucket.Allow() {
			logger.GetLogger().WithFields(map[string]interface{}{
				"path":  r.URL.Path,
				"event": "rate_limited",
			}).Warn("Request rejected by rate limiter")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "rate limit exceeded, try again shortly",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
