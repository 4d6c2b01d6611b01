package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucket_StartsFull(t *testing.T) {
	tb := NewTokenBucket(5, 1, time.Hour)
	assert.Equal(t, int64(5), tb.Tokens())
	assert.Equal(t, int64(5), tb.Capacity())
}

func TestTokenBucket_ExhaustsCapacity(t *testing.T) {
	tb := NewTokenBucket(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "token %d should be granted", i)
	}
	assert.False(t, tb.Allow())
	assert.Equal(t, int64(0), tb.Tokens())
}

func TestTokenBucket_RefillsAfterPeriod(t *testing.T) {
	tb := NewTokenBucket(2, 2, 10*time.Millisecond)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	time.Sleep(25 * time.Millisecond)

	assert.True(t, tb.Allow())
}

func TestTokenBucket_RefillDoesNotExceedCapacity(t *testing.T) {
	tb := NewTokenBucket(2, 100, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(2), tb.Tokens())
}
