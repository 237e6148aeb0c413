// Package dates handles the calendar-day strings (YYYY-MM-DD) used for
// stays and inventory, plus the weekday conventions spoken at the API edge.
//
// Internally every weekday is a time.Weekday (Sunday=0 .. Saturday=6).
package dates

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidWeekday = errors.New("weekday index must be between 0 and 6")
)

// Parse reads a YYYY-MM-DD string as a UTC midnight.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Valid reports whether s is a zero-padded YYYY-MM-DD date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Nights counts the nights in [checkIn, checkOut). It is zero or negative
// when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// EachNight returns every night of the half-open stay [checkIn, checkOut).
func EachNight(checkIn, checkOut time.Time) []string {
	n := Nights(checkIn, checkOut)
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Format(checkIn.AddDate(0, 0, i)))
	}
	return out
}

// EachDay returns every day of the closed range [start, end].
func EachDay(start, end time.Time) []time.Time {
	if end.Before(start) {
		return nil
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// WeekdayFromMondayIndex converts a Monday-first index (0=Monday .. 6=Sunday)
// into a time.Weekday.
func WeekdayFromMondayIndex(i int) (time.Weekday, error) {
	if i < 0 || i > 6 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, i)
	}
	return time.Weekday((i + 1) % 7), nil
}

// WeekdaySet builds a lookup from Sunday-first weekday codes.
func WeekdaySet(codes []int) map[time.Weekday]struct{} {
	set := make(map[time.Weekday]struct{}, len(codes))
	for _, c := range codes {
		if c >= 0 && c <= 6 {
			set[time.Weekday(c)] = struct{}{}
		}
	}
	return set
}

// Today returns the current UTC calendar date.
func Today(now time.Time) string {
	return Format(now)
}

// MonthStart returns the first day of now's month, UTC.
func MonthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Timestamp renders t as the RFC3339 string stored on documents.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	Layout,
}

// ParseTimestamp accepts RFC3339 and the zone-less ISO forms admins tend to
// type. Zone-less values are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %q", s)
}
