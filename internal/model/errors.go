package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRange covers bad or missing user input: a reversed date pair,
// an empty date field or an unknown coin. It is reported before any fetch.
var ErrInvalidRange = errors.New("invalid range")

// ErrNoData marks a successful fetch that produced a zero-length series.
// Distinct from a fetch failure: the upstream answered, there is just
// nothing to show for the requested window.
var ErrNoData = errors.New("no data for this range")

// FetchError is a transport-level failure against the upstream API.
// It carries no partial data.
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.URL)
}

// InvalidRangeError wraps ErrInvalidRange with a human-readable reason so
// handlers can surface it directly to the user.
func InvalidRangeError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRange, reason)
}
