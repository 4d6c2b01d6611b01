package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_dashboard_http_requests_total",
			Help: "The total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_dashboard_http_request_duration_seconds",
			Help:    "The HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_dashboard_cache_hits_total",
			Help: "The total number of series cache hits",
		},
		[]string{"cache_backend"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_dashboard_cache_misses_total",
			Help: "The total number of series cache misses",
		},
		[]string{"cache_backend"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crypto_dashboard_cache_operation_duration_seconds",
			Help:    "The series cache operation latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache_backend", "operation"},
	)

	// Upstream market data API metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_dashboard_upstream_requests_total",
			Help: "The total number of market data API requests",
		},
		[]string{"status_code"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crypto_dashboard_upstream_request_duration_seconds",
			Help:    "The market data API request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	UpstreamPingRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crypto_dashboard_upstream_ping_retries_total",
			Help: "The total number of startup connectivity probe retries",
		},
	)

	// Dashboard update metrics
	DashboardUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crypto_dashboard_updates_total",
			Help: "The total number of dashboard update operations",
		},
		[]string{"status"},
	)

	DashboardUpdateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crypto_dashboard_update_duration_seconds",
			Help:    "The dashboard update latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Latest observed price per coin
	LatestPrices = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crypto_dashboard_latest_price",
			Help: "The latest fetched price per coin",
		},
		[]string{"coin_id"},
	)

	// Connected websocket subscribers
	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crypto_dashboard_websocket_clients",
			Help: "The number of connected websocket subscribers",
		},
	)

	// Service info
	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crypto_dashboard_service_info",
			Help: "Information about the crypto dashboard service",
		},
		[]string{"version", "cache_backend"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit
func RecordCacheHit(backend string) {
	CacheHitsTotal.WithLabelValues(backend).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(backend string) {
	CacheMissesTotal.WithLabelValues(backend).Inc()
}

// RecordCacheOperation records cache operation duration
func RecordCacheOperation(backend, operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// RecordUpstreamRequest records market data API request metrics
func RecordUpstreamRequest(statusCode int, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	UpstreamRequestDuration.Observe(duration.Seconds())
}

// RecordPingRetry records a startup connectivity probe retry
func RecordPingRetry() {
	UpstreamPingRetries.Inc()
}

// RecordDashboardUpdate records a dashboard update operation
func RecordDashboardUpdate(status string, duration time.Duration) {
	DashboardUpdatesTotal.WithLabelValues(status).Inc()
	DashboardUpdateDuration.Observe(duration.Seconds())
}

// UpdateLatestPrice updates the latest price gauge for a coin
func UpdateLatestPrice(coinID string, price float64) {
	LatestPrices.WithLabelValues(coinID).Set(price)
}

// SetServiceInfo sets service information
func SetServiceInfo(version, cacheBackend string) {
	ServiceInfo.WithLabelValues(version, cacheBackend).Set(1)
}
