package model

import (
	"math"
	"time"
)

// MarketCapUnavailable is what the summary always reports for market cap.
// Computing it would require a second upstream call per update.
const MarketCapUnavailable = "unavailable"

// Summary holds the headline figures derived from a price series.
type Summary struct {
	CoinID        string  `json:"coin_id"`
	LatestPrice   float64 `json:"latest_price"`
	PercentChange float64 `json:"percent_change"`
	MarketCap     string  `json:"market_cap"`
}

// ChartPoint is one point of the rendered time series. Prices are rounded
// to six decimal places for display.
type ChartPoint struct {
	TimestampMs int64   `json:"timestamp_ms"`
	Price       float64 `json:"price"`
}

// TableRow is one row of the tabular view.
type TableRow struct {
	TimestampMs int64   `json:"timestamp_ms"`
	Price       float64 `json:"price"`
}

// Dashboard is the full payload backing the three presentation surfaces:
// summary text, line chart and table.
type Dashboard struct {
	Query     RangeQuery   `json:"query"`
	Summary   Summary      `json:"summary"`
	Chart     []ChartPoint `json:"chart"`
	Table     []TableRow   `json:"table"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// BuildDashboard derives the dashboard payload from a non-empty series.
//
// Latest price comes from the last sample; the percent change compares it
// against the second-to-last sample and defaults to zero for single-sample
// series (Previous falls back to Latest, so the division is always safe).
// The table lists the same samples newest first.
func BuildDashboard(query RangeQuery, series PriceSeries, fetchedAt time.Time) *Dashboard {
	latest := series.Latest()
	prev := series.Previous()

	change := 0.0
	if prev.Price != 0 {
		change = (latest.Price - prev.Price) / prev.Price * 100
	}

	chart := make([]ChartPoint, len(series))
	for i, s := range series {
		chart[i] = ChartPoint{
			TimestampMs: s.TimestampMs,
			Price:       roundPrice(s.Price),
		}
	}

	table := make([]TableRow, len(series))
	for i, s := range series {
		table[len(series)-1-i] = TableRow{
			TimestampMs: s.TimestampMs,
			Price:       s.Price,
		}
	}

	return &Dashboard{
		Query: query,
		Summary: Summary{
			CoinID:        query.CoinID,
			LatestPrice:   latest.Price,
			PercentChange: change,
			MarketCap:     MarketCapUnavailable,
		},
		Chart:     chart,
		Table:     table,
		FetchedAt: fetchedAt,
	}
}

// roundPrice rounds to six decimal places for display.
func roundPrice(p float64) float64 {
	return math.Round(p*1e6) / 1e6
}
