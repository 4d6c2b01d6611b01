package cache

import (
	"time"

	"crypto-dashboard-service/internal/model"
)

// Cache memoizes price series by RangeQuery. Historical windows are
// immutable, so entries are never invalidated or refreshed.
type Cache interface {
	// Get returns the cached series for the query, if present.
	Get(query model.RangeQuery) (model.PriceSeries, bool, error)

	// Set stores the series for the query, replacing any prior entry.
	Set(query model.RangeQuery, series model.PriceSeries) error

	// Size returns the number of cached entries.
	Size() (int, error)

	// Clear removes all cached entries.
	Clear() error

	// Close closes any connections and cleans up resources.
	Close() error
}

// Config holds configuration for cache implementations
type Config struct {
	// TTL applies to the redis backend; zero means entries never expire.
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}
