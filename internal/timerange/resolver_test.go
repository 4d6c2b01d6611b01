package timerange

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-dashboard-service/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestResolver_Preset(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 30, 45, 123_000_000, time.UTC)
	resolver := NewResolver(fixedClock(now))

	tests := []struct {
		name string
		days int
	}{
		{name: "one day", days: 1},
		{name: "one week", days: 7},
		{name: "one month", days: 30},
		{name: "three months", days: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := resolver.Preset("bitcoin", tt.days)
			require.NoError(t, err)

			assert.Equal(t, "bitcoin", q.CoinID)
			assert.Equal(t, now.UnixMilli()/1000, q.ToSec)
			assert.Equal(t, (now.UnixMilli()-int64(tt.days)*86400000)/1000, q.FromSec)

			// Window length is exactly days*86400 seconds within one second.
			assert.InDelta(t, int64(tt.days)*86400, q.ToSec-q.FromSec, 1)
		})
	}
}

func TestResolver_Preset_RejectsNonPositiveDayCount(t *testing.T) {
	resolver := NewResolver(nil)

	for _, days := range []int{0, -1, -30} {
		_, err := resolver.Preset("bitcoin", days)
		assert.ErrorIs(t, err, model.ErrInvalidRange)
	}
}

func TestResolver_Custom_IncludesFullEndDay(t *testing.T) {
	resolver := NewResolver(nil)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	q, err := resolver.Custom("ethereum", from, to)
	require.NoError(t, err)

	assert.Equal(t, from.UnixMilli()/1000, q.FromSec)

	// The boundary must cover 23:59:59.999 of the end day.
	lastMoment := time.Date(2024, 1, 31, 23, 59, 59, 999_000_000, time.UTC)
	assert.Equal(t, lastMoment.UnixMilli()/1000, q.ToSec)
	assert.GreaterOrEqual(t, q.ToSec*1000+999, lastMoment.UnixMilli())
}

func TestResolver_Custom_SameDayRange(t *testing.T) {
	resolver := NewResolver(nil)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	q, err := resolver.Custom("bitcoin", day, day)
	require.NoError(t, err)

	assert.Equal(t, day.Unix(), q.FromSec)
	assert.Equal(t, day.Unix()+86399, q.ToSec)
}

func TestResolver_Custom_RejectsReversedRange(t *testing.T) {
	resolver := NewResolver(nil)

	from := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := resolver.Custom("bitcoin", from, to)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRange)
}

func TestResolver_ParseCustom(t *testing.T) {
	resolver := NewResolver(nil)

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{name: "valid range", from: "2024-01-01", to: "2024-01-31", wantErr: false},
		{name: "missing from", from: "", to: "2024-01-31", wantErr: true},
		{name: "missing to", from: "2024-01-01", to: "", wantErr: true},
		{name: "both missing", from: "", to: "", wantErr: true},
		{name: "malformed from", from: "01/01/2024", to: "2024-01-31", wantErr: true},
		{name: "malformed to", from: "2024-01-01", to: "soon", wantErr: true},
		{name: "reversed", from: "2024-01-31", to: "2024-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := resolver.ParseCustom("bitcoin", tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrInvalidRange))
				return
			}
			require.NoError(t, err)
			assert.Less(t, q.FromSec, q.ToSec)
		})
	}
}
