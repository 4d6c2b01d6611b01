package service

import (
	"context"
	"sync"
	"time"

	"crypto-dashboard-service/internal/cache"
	"crypto-dashboard-service/internal/logger"
	"crypto-dashboard-service/internal/metrics"
	"crypto-dashboard-service/internal/model"
)

// MarketDataClient defines the upstream interface the service needs.
type MarketDataClient interface {
	FetchPriceHistory(ctx context.Context, coinID string, fromSec, toSec int64) (model.PriceSeries, error)
}

// Broadcaster receives every newly committed dashboard, e.g. to push it to
// websocket subscribers.
type Broadcaster interface {
	Broadcast(dashboard *model.Dashboard)
}

// DashboardService drives the cache/fetch/build flow behind the dashboard
// and keeps the last committed snapshot.
//
// Overlapping updates are resolved with a request-generation counter: a
// response from an update that started before the newest one is returned to
// its own caller but is not committed as the current snapshot, so a slow
// stale response can never overwrite a newer one.
type DashboardService struct {
	client      MarketDataClient
	seriesCache cache.Cache
	broadcaster Broadcaster
	now         func() time.Time

	mu         sync.Mutex
	gen        uint64
	current    *model.Dashboard
	currentGen uint64
}

// NewDashboardService creates a new dashboard service. The broadcaster may
// be nil. A nil clock falls back to time.Now.
func NewDashboardService(client MarketDataClient, seriesCache cache.Cache, broadcaster Broadcaster, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		client:      client,
		seriesCache: seriesCache,
		broadcaster: broadcaster,
		now:         now,
	}
}

// UpdateDashboard is the single entry point behind the UI: resolve the
// series for the query (cache first, upstream on miss), derive the
// dashboard payload and commit it as the current snapshot unless a newer
// update has started in the meantime.
//
// An empty series yields ErrNoData and leaves the current snapshot
// untouched, as does any fetch failure.
func (s *DashboardService) UpdateDashboard(ctx context.Context, query model.RangeQuery) (*model.Dashboard, error) {
	start := time.Now()

	if !model.IsSupportedCoin(query.CoinID) {
		metrics.RecordDashboardUpdate("invalid_coin", time.Since(start))
		return nil, model.InvalidRangeError("unsupported coin: " + query.CoinID)
	}

	generation := s.beginUpdate()

	series, err := s.resolveSeries(ctx, query)
	if err != nil {
		metrics.RecordDashboardUpdate("fetch_error", time.Since(start))
		logger.LogDashboardUpdate(ctx, query.Key(), 0, false, time.Since(start), err)
		return nil, err
	}

	if series.IsEmpty() {
		metrics.RecordDashboardUpdate("no_data", time.Since(start))
		logger.LogDashboardUpdate(ctx, query.Key(), 0, false, time.Since(start), model.ErrNoData)
		return nil, model.ErrNoData
	}

	dashboard := model.BuildDashboard(query, series, s.now())
	committed := s.commit(dashboard, generation)

	if committed {
		metrics.UpdateLatestPrice(query.CoinID, dashboard.Summary.LatestPrice)
		if s.broadcaster != nil {
			s.broadcaster.Broadcast(dashboard)
		}
	}

	metrics.RecordDashboardUpdate("success", time.Since(start))
	logger.LogDashboardUpdate(ctx, query.Key(), len(series), committed, time.Since(start), nil)
	return dashboard, nil
}

// Current returns the last committed dashboard, or nil before the first
// successful update. Failed or empty updates never clear it.
func (s *DashboardService) Current() *model.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// resolveSeries returns the cached series for the query or fetches and
// stores it. Empty series are cached too: the upstream answered, and an
// identical query must not hit the network again.
func (s *DashboardService) resolveSeries(ctx context.Context, query model.RangeQuery) (model.PriceSeries, error) {
	lookupStart := time.Now()
	series, hit, err := s.seriesCache.Get(query)
	logger.LogCacheOperation(ctx, "get", "series", query.Key(), hit, time.Since(lookupStart))
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("Series cache lookup failed, fetching upstream")
	}
	if err == nil && hit {
		return series, nil
	}

	series, err = s.client.FetchPriceHistory(ctx, query.CoinID, query.FromSec, query.ToSec)
	if err != nil {
		return nil, err
	}

	if err := s.seriesCache.Set(query, series); err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("Failed to store series in cache")
	}
	return series, nil
}

// beginUpdate allocates the next request generation.
func (s *DashboardService) beginUpdate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// commit installs the dashboard as the current snapshot unless a newer
// update has started since this one began.
func (s *DashboardService) commit(dashboard *model.Dashboard, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation < s.gen {
		return false
	}
	if generation < s.currentGen {
		return false
	}

	s.current = dashboard
	s.currentGen = generation
	return true
}
