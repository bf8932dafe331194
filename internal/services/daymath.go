package services

import (
	"strings"
	"time"
	"trip-planner-service/internal/domain"
)

const isoDate = "2006-01-02"

// Date arithmetic is timezone-naive: dates are parsed and manipulated as pure
// calendar dates in UTC so that DST transitions can never shift a day.

// ParseISO parses a YYYY-MM-DD calendar date.
func ParseISO(s string) (time.Time, error) {
	t, err := time.ParseInLocation(isoDate, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, &domain.InvalidDateError{Value: s}
	}
	return t, nil
}

// FormatISO renders a calendar date as YYYY-MM-DD.
func FormatISO(t time.Time) string { return t.Format(isoDate) }

// AddDays returns the calendar date n days after t (n may be negative).
func AddDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }

// CountDaysInclusive returns the number of calendar days spanning the two
// dates, counting both endpoints: the same day on both sides yields 1.
// The result is zero or negative when end precedes start; callers validate
// the range before allocating nights.
func CountDaysInclusive(start, end string) (int, error) {
	s, err := ParseISO(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseISO(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}
