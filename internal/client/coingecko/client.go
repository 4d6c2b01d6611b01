package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"

	"crypto-dashboard-service/internal/config"
	"crypto-dashboard-service/internal/logger"
	"crypto-dashboard-service/internal/metrics"
	"crypto-dashboard-service/internal/model"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
	DefaultTimeout = 10 * time.Second

	// VsCurrency is fixed; the dashboard only displays USD prices.
	VsCurrency = "usd"

	marketChartRangePath = "/coins/%s/market_chart/range"
	pingPath             = "/ping"

	defaultPingAttempts = 3
	defaultPingDelay    = 500 * time.Millisecond
)

// Client talks to the CoinGecko REST API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	pingAttempts uint
	pingDelay    time.Duration
}

// NewClient creates a client with default settings.
func NewClient() *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		baseURL:      DefaultBaseURL,
		pingAttempts: defaultPingAttempts,
		pingDelay:    defaultPingDelay,
	}
}

// NewClientWithConfig creates a client from configuration.
func NewClientWithConfig(cfg config.CoinGeckoConfig) *Client {
	c := NewClient()
	if cfg.BaseURL != "" {
		c.baseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if cfg.PingAttempts > 0 {
		c.pingAttempts = cfg.PingAttempts
	}
	if cfg.PingDelay > 0 {
		c.pingDelay = cfg.PingDelay
	}
	return c
}

// marketChartResponse mirrors the market_chart/range body. Only the prices
// field is consumed: a sequence of [timestampMs, price] pairs.
type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

// FetchPriceHistory issues a single market-chart-range request and parses
// the response into an ordered price series.
//
// A non-2xx response is a *model.FetchError with no partial data. A body
// whose prices field is absent or malformed degrades to an empty series
// instead of an error; callers must treat an empty series as "no data".
// The client does not retry and does not deduplicate in-flight requests.
func (c *Client) FetchPriceHistory(ctx context.Context, coinID string, fromSec, toSec int64) (model.PriceSeries, error) {
	u, err := url.Parse(c.baseURL + fmt.Sprintf(marketChartRangePath, url.PathEscape(coinID)))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("vs_currency", VsCurrency)
	q.Set("from", strconv.FormatInt(fromSec, 10))
	q.Set("to", strconv.FormatInt(toSec, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "crypto-dashboard-service/1.0")
	req.Header.Set("Accept", "application/json")

	logger.LogUpstreamRequest(ctx, coinID, u.String())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	metrics.RecordUpstreamRequest(resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.LogUpstreamResponse(ctx, resp.StatusCode, duration, 0)
		return nil, &model.FetchError{StatusCode: resp.StatusCode, URL: u.String()}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	series := parsePrices(body)
	logger.LogUpstreamResponse(ctx, resp.StatusCode, duration, len(series))
	return series, nil
}

// parsePrices extracts the price series from a response body. A body that
// does not decode, or whose pairs are short, yields an empty series rather
// than an error. "No data" and "malformed data" are deliberately the same
// outcome here.
func parsePrices(body []byte) model.PriceSeries {
	var chart marketChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}
	}

	series := make(model.PriceSeries, 0, len(chart.Prices))
	for _, pair := range chart.Prices {
		if len(pair) < 2 {
			continue
		}
		series = append(series, model.PriceSample{
			TimestampMs: int64(pair[0]),
			Price:       pair[1],
		})
	}
	return series
}

// Ping probes upstream connectivity with bounded retries. Used once at
// startup; dashboard fetches are never retried.
func (c *Client) Ping(ctx context.Context) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pingPath, nil)
			if err != nil {
				return err
			}
			req.Header.Set("User-Agent", "crypto-dashboard-service/1.0")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return &model.FetchError{StatusCode: resp.StatusCode, URL: c.baseURL + pingPath}
			}
			return nil
		},
		retry.Attempts(c.pingAttempts),
		retry.Delay(c.pingDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordPingRetry()
			logger.GetLogger().WithFields(map[string]interface{}{
				"attempt": n + 1,
				"error":   err.Error(),
				"event":   "upstream_ping_retry",
			}).Warn("Upstream connectivity probe failed, retrying")
		}),
	)
}
