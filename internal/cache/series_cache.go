package cache

import (
	"sync"

	"crypto-dashboard-service/internal/model"
)

// SeriesCache is the in-memory result cache: unbounded, no eviction, no
// expiry. Entries live for the lifetime of the process, which is safe
// because a coin's price history for a fixed past window does not change.
type SeriesCache struct {
	mutex  sync.RWMutex
	series map[string]model.PriceSeries
}

// NewSeriesCache creates a new in-memory series cache.
func NewSeriesCache() *SeriesCache {
	return &SeriesCache{
		series: make(map[string]model.PriceSeries),
	}
}

// Get returns the cached series for the query, if present.
func (sc *SeriesCache) Get(query model.RangeQuery) (model.PriceSeries, bool, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()

	series, ok := sc.series[query.Key()]
	return series, ok, nil
}

// Set stores the series for the query, replacing any prior entry.
func (sc *SeriesCache) Set(query model.RangeQuery, series model.PriceSeries) error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	sc.series[query.Key()] = series
	return nil
}

// Size returns the number of cached entries.
func (sc *SeriesCache) Size() (int, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()

	return len(sc.series), nil
}

// Clear removes all cached entries.
func (sc *SeriesCache) Clear() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	sc.series = make(map[string]model.PriceSeries)
	return nil
}

// Close is a no-op for the in-memory cache.
func (sc *SeriesCache) Close() error {
	return nil
}
