package cache

import (
	"time"

	"crypto-dashboard-service/internal/metrics"
	"crypto-dashboard-service/internal/model"
)

// InstrumentedCache wraps a Cache and records Prometheus metrics for every
// operation.
type InstrumentedCache struct {
	inner   Cache
	backend string
}

// NewInstrumentedCache wraps the given cache with metrics instrumentation.
func NewInstrumentedCache(inner Cache, backend string) *InstrumentedCache {
	return &InstrumentedCache{
		inner:   inner,
		backend: backend,
	}
}

// Get records hit/miss counters alongside the lookup.
func (ic *InstrumentedCache) Get(query model.RangeQuery) (model.PriceSeries, bool, error) {
	start := time.Now()
	series, hit, err := ic.inner.Get(query)
	metrics.RecordCacheOperation(ic.backend, "get", time.Since(start))

	if err == nil {
		if hit {
			metrics.RecordCacheHit(ic.backend)
		} else {
			metrics.RecordCacheMiss(ic.backend)
		}
	}
	return series, hit, err
}

// Set records the store duration.
func (ic *InstrumentedCache) Set(query model.RangeQuery, series model.PriceSeries) error {
	start := time.Now()
	err := ic.inner.Set(query, series)
	metrics.RecordCacheOperation(ic.backend, "set", time.Since(start))
	return err
}

// Size delegates to the wrapped cache.
func (ic *InstrumentedCache) Size() (int, error) {
	return ic.inner.Size()
}

// Clear delegates to the wrapped cache.
func (ic *InstrumentedCache) Clear() error {
	return ic.inner.Clear()
}

// Close delegates to the wrapped cache.
func (ic *InstrumentedCache) Close() error {
	return ic.inner.Close()
}
