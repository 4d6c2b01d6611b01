package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-dashboard-service/internal/model"
)

func sampleSeries(prices ...float64) model.PriceSeries {
	series := make(model.PriceSeries, len(prices))
	for i, p := range prices {
		series[i] = model.PriceSample{TimestampMs: int64(i) * 60000, Price: p}
	}
	return series
}

func TestSeriesCache_GetMiss(t *testing.T) {
	c := NewSeriesCache()

	series, hit, err := c.Get(model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, series)
}

func TestSeriesCache_SetAndGet(t *testing.T) {
	c := NewSeriesCache()
	q := model.RangeQuery{CoinID: "bitcoin", FromSec: 100, ToSec: 200}
	stored := sampleSeries(1.1, 2.2, 3.3)

	require.NoError(t, c.Set(q, stored))

	got, hit, err := c.Get(q)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, stored, got)
}

func TestSeriesCache_KeyIsCompositeOfCoinAndBounds(t *testing.T) {
	c := NewSeriesCache()
	base := model.RangeQuery{CoinID: "bitcoin", FromSec: 100, ToSec: 200}
	require.NoError(t, c.Set(base, sampleSeries(1)))

	tests := []struct {
		name  string
		query model.RangeQuery
		hit   bool
	}{
		{name: "identical query", query: base, hit: true},
		{name: "different coin", query: model.RangeQuery{CoinID: "ethereum", FromSec: 100, ToSec: 200}, hit: false},
		{name: "different from", query: model.RangeQuery{CoinID: "bitcoin", FromSec: 101, ToSec: 200}, hit: false},
		{name: "different to", query: model.RangeQuery{CoinID: "bitcoin", FromSec: 100, ToSec: 201}, hit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hit, err := c.Get(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.hit, hit)
		})
	}
}

func TestSeriesCache_SetReplacesExistingEntry(t *testing.T) {
	c := NewSeriesCache()
	q := model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2}

	require.NoError(t, c.Set(q, sampleSeries(1)))
	require.NoError(t, c.Set(q, sampleSeries(2, 3)))

	got, hit, err := c.Get(q)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Len(t, got, 2)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestSeriesCache_EmptySeriesIsCacheable(t *testing.T) {
	// An empty series is a valid "no data" result and may be stored.
	c := NewSeriesCache()
	q := model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2}

	require.NoError(t, c.Set(q, model.PriceSeries{}))

	got, hit, err := c.Get(q)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, got.IsEmpty())
}

func TestSeriesCache_Clear(t *testing.T) {
	c := NewSeriesCache()
	for i := 0; i < 5; i++ {
		q := model.RangeQuery{CoinID: "bitcoin", FromSec: int64(i), ToSec: int64(i + 100)}
		require.NoError(t, c.Set(q, sampleSeries(float64(i))))
	}

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 5, size)

	require.NoError(t, c.Clear())

	size, err = c.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)
}

func TestSeriesCache_ConcurrentAccess(t *testing.T) {
	c := NewSeriesCache()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			q := model.RangeQuery{CoinID: fmt.Sprintf("coin-%d", i%5), FromSec: int64(i), ToSec: int64(i + 1)}
			_ = c.Set(q, sampleSeries(float64(i)))
		}(i)
		go func(i int) {
			defer wg.Done()
			q := model.RangeQuery{CoinID: fmt.Sprintf("coin-%d", i%5), FromSec: int64(i), ToSec: int64(i + 1)}
			_, _, _ = c.Get(q)
		}(i)
	}
	wg.Wait()

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 20, size)
}

func TestInstrumentedCache_DelegatesToInner(t *testing.T) {
	c := NewInstrumentedCache(NewSeriesCache(), "memory")
	q := model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2}

	_, hit, err := c.Get(q)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(q, sampleSeries(9.9)))

	got, hit, err := c.Get(q)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 9.9, got[0].Price)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	require.NoError(t, c.Clear())
	require.NoError(t, c.Close())
}

func TestNewCacheFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr bool
	}{
		{name: "memory backend", backend: "memory", wantErr: false},
		{name: "empty defaults to memory", backend: "", wantErr: false},
		{name: "unknown backend", backend: "memcached", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCacheFromConfig(tt.backend, Config{})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
			_, ok := c.(*InstrumentedCache)
			assert.True(t, ok)
		})
	}
}
