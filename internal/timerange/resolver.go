package timerange

import (
	"time"

	"crypto-dashboard-service/internal/model"
)

// DateLayout is the wire format for custom range boundaries.
const DateLayout = "2006-01-02"

const dayMs = 24 * 60 * 60 * 1000

// Resolver converts a UI range selection (preset day-count or explicit
// from/to dates) into inclusive Unix-second boundaries. The clock is
// injected so boundary math is deterministic under test.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a resolver using the supplied clock. A nil clock
// falls back to time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// Preset resolves a fixed day-count shortcut: the window ends now and
// starts days*24h earlier. Boundary seconds are truncated from millisecond
// precision.
func (r *Resolver) Preset(coinID string, days int) (model.RangeQuery, error) {
	if days <= 0 {
		return model.RangeQuery{}, model.InvalidRangeError("day count must be positive")
	}

	nowMs := r.now().UnixMilli()
	return model.RangeQuery{
		CoinID:  coinID,
		FromSec: (nowMs - int64(days)*dayMs) / 1000,
		ToSec:   nowMs / 1000,
	}, nil
}

// Custom resolves an explicit calendar-date pair. The "to" date is advanced
// to the last millisecond of its calendar day before truncation so the end
// day is fully included.
func (r *Resolver) Custom(coinID string, from, to time.Time) (model.RangeQuery, error) {
	if from.IsZero() || to.IsZero() {
		return model.RangeQuery{}, model.InvalidRangeError("both dates are required")
	}
	if from.After(to) {
		return model.RangeQuery{}, model.InvalidRangeError("start date is after end date")
	}

	endOfDay := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999_000_000, to.Location())

	return model.RangeQuery{
		CoinID:  coinID,
		FromSec: from.UnixMilli() / 1000,
		ToSec:   endOfDay.UnixMilli() / 1000,
	}, nil
}

// ParseCustom resolves a custom range from raw date strings as submitted by
// the date pickers. Empty or malformed fields are rejected before any fetch.
func (r *Resolver) ParseCustom(coinID, fromStr, toStr string) (model.RangeQuery, error) {
	if fromStr == "" || toStr == "" {
		return model.RangeQuery{}, model.InvalidRangeError("both dates are required")
	}

	from, err := time.Parse(DateLayout, fromStr)
	if err != nil {
		return model.RangeQuery{}, model.InvalidRangeError("invalid start date: " + fromStr)
	}
	to, err := time.Parse(DateLayout, toStr)
	if err != nil {
		return model.RangeQuery{}, model.InvalidRangeError("invalid end date: " + toStr)
	}

	return r.Custom(coinID, from, to)
}
