package types

import (
	"fmt"
	"time"
)

// ParseTimestamp parses an optional RFC3339 timestamp. Empty input yields the
// zero time.
func ParseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return ts, nil
}
