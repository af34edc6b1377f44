package dateutil

import (
	"fmt"
	"time"
)

// ISODate is the canonical YYYY-MM-DD layout used across the server.
const ISODate = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatISO formats a date as YYYY-MM-DD
func FormatISO(date time.Time) string {
	return date.Format(ISODate)
}

// FormatISO8601 formats a datetime to ISO 8601 with timezone offset
// Example: 2025-01-15T10:00:00.000+0000
func FormatISO8601(date time.Time) string {
	return date.Format("2006-01-02T15:04:05.000-0700")
}

// ParseDate parses a date or datetime string in the given location.
// Accepted layouts: YYYY-MM-DD and common ISO 8601 datetime variants.
// Returns an error when no layout matches.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	// Layouts that carry their own offset, including the FormatISO8601 shape
	for _, format := range []string{time.RFC3339, "2006-01-02T15:04:05.000-0700", "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.In(loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// LoadLocation resolves an IANA timezone name, defaulting to UTC when empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// WeekRows returns how many week rows the month spans when laid out
// Monday-first (used by month summaries).
func WeekRows(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	if offset == 0 {
		offset = 7 // Sunday = 7
	}
	return (DaysInMonth(year, month) + offset - 1 + 6) / 7
}
