package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeQuery_Key(t *testing.T) {
	q := RangeQuery{CoinID: "bitcoin", FromSec: 1700000000, ToSec: 1700086400}
	assert.Equal(t, "bitcoin:1700000000:1700086400", q.Key())

	// Keys differ whenever any component differs.
	other := RangeQuery{CoinID: "bitcoin", FromSec: 1700000000, ToSec: 1700086401}
	assert.NotEqual(t, q.Key(), other.Key())
}

func TestPriceSeries_LatestAndPrevious(t *testing.T) {
	series := PriceSeries{
		{TimestampMs: 1000, Price: 100},
		{TimestampMs: 2000, Price: 110},
	}
	assert.Equal(t, 110.0, series.Latest().Price)
	assert.Equal(t, 100.0, series.Previous().Price)

	single := PriceSeries{{TimestampMs: 1000, Price: 42}}
	assert.Equal(t, single.Latest(), single.Previous())

	assert.True(t, PriceSeries{}.IsEmpty())
	assert.True(t, PriceSeries(nil).IsEmpty())
}

func TestBuildDashboard_ZeroPreviousPriceYieldsZeroChange(t *testing.T) {
	series := PriceSeries{
		{TimestampMs: 1000, Price: 0},
		{TimestampMs: 2000, Price: 5},
	}
	d := BuildDashboard(RangeQuery{CoinID: "bitcoin"}, series, time.Now())
	assert.Equal(t, 0.0, d.Summary.PercentChange)
	assert.Equal(t, 5.0, d.Summary.LatestPrice)
}

func TestInitializeSupportedCoins(t *testing.T) {
	require.NoError(t, InitializeSupportedCoins([]string{"bitcoin", "cardano"}))
	assert.True(t, IsSupportedCoin("bitcoin"))
	assert.True(t, IsSupportedCoin("cardano"))
	assert.False(t, IsSupportedCoin("ethereum"))
	assert.Equal(t, []string{"bitcoin", "cardano"}, SupportedCoinIDs())

	err := InitializeSupportedCoins([]string{"bitcoin", "notacoin"})
	require.Error(t, err)
}
