package task

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO 8601 form used for created_at and updated_at.
// Microseconds are always printed so that stored values sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t in local time using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp parses a value produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// Stamp returns the instant stored for now: local time truncated to the
// precision that survives a round trip through FormatTimestamp.
func Stamp(now time.Time) time.Time {
	return now.Local().Truncate(time.Microsecond)
}

// Date is a calendar date with no time of day. The zero value means "no
// date"; every date in 0001-9999 is representable, including 0001-01-01.
type Date struct {
	t     time.Time
	valid bool
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses YYYY-MM-DD. The empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t: t, valid: true}, nil
}

// IsZero reports whether d is the "no date" value.
func (d Date) IsZero() bool { return !d.valid }

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// AddDays returns the date n days after d (n may be negative). The zero
// Date stays zero.
func (d Date) AddDays(n int) Date {
	if !d.valid {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n), valid: true}
}

// String renders YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(time.DateOnly)
}
