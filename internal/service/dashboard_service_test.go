package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-dashboard-service/internal/cache"
	"crypto-dashboard-service/internal/model"
)

type mockClient struct {
	mu    sync.Mutex
	calls int
	fetch func(ctx context.Context, coinID string, fromSec, toSec int64) (model.PriceSeries, error)
}

func (m *mockClient) FetchPriceHistory(ctx context.Context, coinID string, fromSec, toSec int64) (model.PriceSeries, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.fetch(ctx, coinID, fromSec, toSec)
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type recordingBroadcaster struct {
	mu         sync.Mutex
	dashboards []*model.Dashboard
}

func (b *recordingBroadcaster) Broadcast(d *model.Dashboard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dashboards = append(b.dashboards, d)
}

func fixedSeries(samples ...model.PriceSample) func(context.Context, string, int64, int64) (model.PriceSeries, error) {
	return func(context.Context, string, int64, int64) (model.PriceSeries, error) {
		return model.PriceSeries(samples), nil
	}
}

func setupCoins(t *testing.T) {
	t.Helper()
	require.NoError(t, model.InitializeSupportedCoins([]string{"bitcoin", "ethereum"}))
}

func newService(client MarketDataClient, b Broadcaster) *DashboardService {
	return NewDashboardService(client, cache.NewSeriesCache(), b, nil)
}

func TestUpdateDashboard_SecondIdenticalQueryHitsCacheOnly(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: fixedSeries(
		model.PriceSample{TimestampMs: 1000, Price: 100},
		model.PriceSample{TimestampMs: 2000, Price: 110},
	)}
	svc := newService(client, nil)
	q := model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2}

	first, err := svc.UpdateDashboard(context.Background(), q)
	require.NoError(t, err)
	second, err := svc.UpdateDashboard(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, first.Summary, second.Summary)
}

func TestUpdateDashboard_DifferentQueriesFetchSeparately(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: fixedSeries(model.PriceSample{TimestampMs: 1000, Price: 5})}
	svc := newService(client, nil)

	_, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)
	_, err = svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, client.callCount())
}

func TestUpdateDashboard_PercentChange(t *testing.T) {
	setupCoins(t)

	tests := []struct {
		name    string
		samples []model.PriceSample
		want    float64
	}{
		{
			name: "plus ten percent",
			samples: []model.PriceSample{
				{TimestampMs: 1000, Price: 100},
				{TimestampMs: 2000, Price: 110},
			},
			want: 10.0,
		},
		{
			name: "minus fifty percent",
			samples: []model.PriceSample{
				{TimestampMs: 1000, Price: 100},
				{TimestampMs: 2000, Price: 50},
			},
			want: -50.0,
		},
		{
			name:    "single sample yields zero change",
			samples: []model.PriceSample{{TimestampMs: 1000, Price: 42}},
			want:    0.0,
		},
		{
			name: "only last two samples matter",
			samples: []model.PriceSample{
				{TimestampMs: 1000, Price: 1},
				{TimestampMs: 2000, Price: 200},
				{TimestampMs: 3000, Price: 220},
			},
			want: 10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{fetch: fixedSeries(tt.samples...)}
			svc := newService(client, nil)

			d, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, d.Summary.PercentChange, 1e-9)
			assert.Equal(t, tt.samples[len(tt.samples)-1].Price, d.Summary.LatestPrice)
		})
	}
}

func TestUpdateDashboard_MarketCapAlwaysUnavailable(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: fixedSeries(model.PriceSample{TimestampMs: 1000, Price: 1})}
	svc := newService(client, nil)

	d, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)
	assert.Equal(t, model.MarketCapUnavailable, d.Summary.MarketCap)
}

func TestUpdateDashboard_TableIsReverseChronological(t *testing.T) {
	setupCoins(t)
	samples := []model.PriceSample{
		{TimestampMs: 1000, Price: 1},
		{TimestampMs: 2000, Price: 2},
		{TimestampMs: 3000, Price: 3},
		{TimestampMs: 4000, Price: 4},
	}
	client := &mockClient{fetch: fixedSeries(samples...)}
	svc := newService(client, nil)

	d, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)

	require.Len(t, d.Table, len(samples))
	for i, row := range d.Table {
		expected := samples[len(samples)-1-i]
		assert.Equal(t, expected.TimestampMs, row.TimestampMs)
		assert.Equal(t, expected.Price, row.Price)
	}

	// Chart keeps the original ascending order.
	require.Len(t, d.Chart, len(samples))
	for i, point := range d.Chart {
		assert.Equal(t, samples[i].TimestampMs, point.TimestampMs)
	}
}

func TestUpdateDashboard_ChartPricesRoundedToSixDecimals(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: fixedSeries(
		model.PriceSample{TimestampMs: 1000, Price: 0.123456789},
		model.PriceSample{TimestampMs: 2000, Price: 0.9999995},
	)}
	svc := newService(client, nil)

	d, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)

	assert.Equal(t, 0.123457, d.Chart[0].Price)
	assert.Equal(t, 1.0, d.Chart[1].Price)
	// Table and summary keep full precision.
	assert.Equal(t, 0.9999995, d.Summary.LatestPrice)
	assert.Equal(t, 0.123456789, d.Table[1].Price)
}

func TestUpdateDashboard_EmptySeriesKeepsPriorSnapshot(t *testing.T) {
	setupCoins(t)
	var empty atomic.Bool
	client := &mockClient{fetch: func(context.Context, string, int64, int64) (model.PriceSeries, error) {
		if empty.Load() {
			return model.PriceSeries{}, nil
		}
		return model.PriceSeries{{TimestampMs: 1000, Price: 77}}, nil
	}}
	svc := newService(client, nil)

	_, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)
	prior := svc.Current()
	require.NotNil(t, prior)

	empty.Store(true)
	_, err = svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 3, ToSec: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNoData)

	assert.Same(t, prior, svc.Current())
}

func TestUpdateDashboard_EmptySeriesIsCachedToo(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: func(context.Context, string, int64, int64) (model.PriceSeries, error) {
		return model.PriceSeries{}, nil
	}}
	svc := newService(client, nil)
	q := model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2}

	_, err := svc.UpdateDashboard(context.Background(), q)
	assert.ErrorIs(t, err, model.ErrNoData)
	_, err = svc.UpdateDashboard(context.Background(), q)
	assert.ErrorIs(t, err, model.ErrNoData)

	assert.Equal(t, 1, client.callCount())
}

func TestUpdateDashboard_FetchFailureKeepsPriorSnapshot(t *testing.T) {
	setupCoins(t)
	var fail atomic.Bool
	client := &mockClient{fetch: func(context.Context, string, int64, int64) (model.PriceSeries, error) {
		if fail.Load() {
			return nil, &model.FetchError{StatusCode: 502}
		}
		return model.PriceSeries{{TimestampMs: 1000, Price: 5}}, nil
	}}
	svc := newService(client, nil)

	_, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)
	prior := svc.Current()

	fail.Store(true)
	_, err = svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 3, ToSec: 4})
	require.Error(t, err)

	var fetchErr *model.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Same(t, prior, svc.Current())
}

func TestUpdateDashboard_UnsupportedCoinRejectedBeforeFetch(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: fixedSeries(model.PriceSample{TimestampMs: 1000, Price: 1})}
	svc := newService(client, nil)

	_, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "shibacoin", FromSec: 1, ToSec: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRange)
	assert.Equal(t, 0, client.callCount())
}

func TestUpdateDashboard_StaleResponseIsNotCommitted(t *testing.T) {
	setupCoins(t)

	slowStarted := make(chan struct{})
	release := make(chan struct{})

	client := &mockClient{fetch: func(_ context.Context, coinID string, _, _ int64) (model.PriceSeries, error) {
		if coinID == "bitcoin" {
			close(slowStarted)
			<-release
			return model.PriceSeries{{TimestampMs: 1000, Price: 111}}, nil
		}
		return model.PriceSeries{{TimestampMs: 2000, Price: 222}}, nil
	}}
	svc := newService(client, nil)

	var slowDashboard *model.Dashboard
	var slowErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		slowDashboard, slowErr = svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	}()

	<-slowStarted

	// A newer update starts and completes while the first is in flight.
	fresh, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "ethereum", FromSec: 3, ToSec: 4})
	require.NoError(t, err)

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("slow update did not finish")
	}

	// The slow caller still gets its own result, but the snapshot belongs
	// to the newer request.
	require.NoError(t, slowErr)
	require.NotNil(t, slowDashboard)
	assert.Equal(t, 111.0, slowDashboard.Summary.LatestPrice)
	assert.Equal(t, fresh.Summary, svc.Current().Summary)
	assert.Equal(t, "ethereum", svc.Current().Query.CoinID)
}

func TestUpdateDashboard_BroadcastsOnlyCommittedUpdates(t *testing.T) {
	setupCoins(t)
	client := &mockClient{fetch: fixedSeries(model.PriceSample{TimestampMs: 1000, Price: 10})}
	b := &recordingBroadcaster{}
	svc := newService(client, b)

	_, err := svc.UpdateDashboard(context.Background(), model.RangeQuery{CoinID: "bitcoin", FromSec: 1, ToSec: 2})
	require.NoError(t, err)

	require.Len(t, b.dashboards, 1)
	assert.Equal(t, "bitcoin", b.dashboards[0].Query.CoinID)
}

func TestCurrent_NilBeforeFirstUpdate(t *testing.T) {
	setupCoins(t)
	svc := newService(&mockClient{fetch: fixedSeries()}, nil)
	assert.Nil(t, svc.Current())
}
