package clock

import (
	"fmt"
	"time"
)

// Layouts for the wire formats: plain calendar dates and minute-precision
// times of day. Neither carries a timezone component; callers supply dates
// already normalized to the tenant's local calendar day.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD wire date into a midnight-normalized time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DayOf strips the time-of-day component, normalizing to local midnight.
// Every entry point that compares calendar days must go through this.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports calendar-day equality, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeDay reports whether a falls on an earlier calendar day than b.
// Comparing date fields keeps a UTC-normalized wire date and a local clock
// reading on the same footing; instant comparison across locations does not.
func BeforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// ParseMinutes converts an "HH:MM" time of day to minutes from midnight.
func ParseMinutes(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes converts minutes from midnight back to "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IsClockTime reports whether s is a well-formed "HH:MM" time of day.
func IsClockTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
