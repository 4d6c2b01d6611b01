package model

import (
	"fmt"
	"time"
)

// PriceSample is a single point of a coin's price history.
// Timestamps are milliseconds since epoch, as delivered by the upstream API.
type PriceSample struct {
	TimestampMs int64   `json:"timestamp_ms"`
	Price       float64 `json:"price"`
}

// Time returns the sample timestamp as a time.Time.
func (s PriceSample) Time() time.Time {
	return time.UnixMilli(s.TimestampMs)
}

// PriceSeries is an ordered (ascending by timestamp) sequence of samples.
// A nil or zero-length series means "no data", which is distinct from a
// fetch failure.
type PriceSeries []PriceSample

// IsEmpty reports whether the series carries no samples.
func (ps PriceSeries) IsEmpty() bool {
	return len(ps) == 0
}

// Latest returns the most recent sample. Callers must check IsEmpty first.
func (ps PriceSeries) Latest() PriceSample {
	return ps[len(ps)-1]
}

// Previous returns the second-to-last sample, or the latest sample when the
// series holds a single point. With a single point the derived percent
// change is therefore zero.
func (ps PriceSeries) Previous() PriceSample {
	if len(ps) < 2 {
		return ps.Latest()
	}
	return ps[len(ps)-2]
}

// RangeQuery identifies one historical-price request: a coin over an
// inclusive pair of Unix-second boundaries. It doubles as the cache key.
type RangeQuery struct {
	CoinID  string `json:"coin_id"`
	FromSec int64  `json:"from_sec"`
	ToSec   int64  `json:"to_sec"`
}

// Key returns the canonical cache key for the query.
func (q RangeQuery) Key() string {
	return fmt.Sprintf("%s:%d:%d", q.CoinID, q.FromSec, q.ToSec)
}

func (q RangeQuery) String() string {
	return q.Key()
}
