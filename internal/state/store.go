// Package state persists the per-feed watermark: the UTC timestamp of
// the last completed run, below which items are considered already
// processed.
package state

import (
	"context"
	"time"
)

// TimeLayout is the on-disk rendering of a watermark. It round-trips
// whole seconds in UTC; "GMT" is literal text, not a zone lookup.
const TimeLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Store maps a feed name to the timestamp of its last completed run.
// Implementations must be safe for concurrent use across feeds; the
// store is keyed, so per-key atomicity suffices.
type Store interface {
	// Get returns the stored watermark for a feed. ok is false when the
	// feed has never completed a run, including when backing data is
	// missing or unreadable.
	Get(ctx context.Context, feed string) (t time.Time, ok bool, err error)
	// Set records the watermark for a feed, replacing any previous value.
	Set(ctx context.Context, feed string, t time.Time) error
}

// FormatTime renders a watermark in the fixed GMT layout.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimeLayout)
}

// ParseTime parses a watermark previously produced by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
