// Package datekey converts calendar days to and from the canonical
// YYYY-MM-DD strings used as activity document IDs.
//
// A key is always derived in the location carried by the time value, so the
// caller decides which timezone defines "today".
package datekey

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidKey = errors.New("invalid date key")

// Format returns the zero-padded YYYY-MM-DD key of t in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse decodes key into midnight of that day in loc. A nil loc means UTC.
func Parse(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return t, nil
}

// Valid reports whether key is a well-formed date key.
func Valid(key string) bool {
	_, err := Parse(key, time.UTC)
	return err == nil
}

// StartOfDay truncates t to local midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Noon returns 12:00 of t's calendar day in t's location. Day arithmetic
// anchored at noon never lands on a skipped or repeated midnight.
func Noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping the wall clock. DST
// transitions do not shift the result onto a neighbouring day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the whole number of calendar days from a to b. The
// difference is rounded so a 23h or 25h DST day still counts as one.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
