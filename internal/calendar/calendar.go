// Package calendar parses, formats and compares ISO calendar dates relative to a
// reference instant. All functions are pure; callers pass "now" explicitly.
package calendar

import "time"

const (
	// ISOLayout is the wire format for calendar dates
	ISOLayout = "2006-01-02"
	// DisplayLayout is the format shown to people
	DisplayLayout = "02/01/2006"
)

// Parse strictly parses an ISO date as midnight in loc
func Parse(s string, loc *time.Location) (time.Time, bool) {
	if len(s) != len(ISOLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(ISOLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns now's date as an ISO string
func Today(now time.Time) string {
	return now.Format(ISOLayout)
}

// IsValidFutureOrToday reports whether s is a valid ISO date that is not before
// the start of now's day
func IsValidFutureOrToday(s string, now time.Time) bool {
	d, ok := Parse(s, now.Location())
	if !ok {
		return false
	}
	return !d.Before(StartOfDay(now))
}

// IsToday reports whether s is now's date
func IsToday(s string, now time.Time) bool {
	d, ok := Parse(s, now.Location())
	return ok && d.Equal(StartOfDay(now))
}

// IsFuture reports whether s is strictly after now's date
func IsFuture(s string, now time.Time) bool {
	d, ok := Parse(s, now.Location())
	return ok && d.After(StartOfDay(now))
}

// Format renders an ISO date as DD/MM/YYYY. Invalid input is returned unchanged.
func Format(s string) string {
	d, ok := Parse(s, time.UTC)
	if !ok {
		return s
	}
	return d.Format(DisplayLayout)
}

// DaysBetween returns the number of whole days from start to end
func DaysBetween(start, end string) (int, bool) {
	a, ok := Parse(start, time.UTC)
	if !ok {
		return 0, false
	}
	b, ok := Parse(end, time.UTC)
	if !ok {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// Next returns n consecutive ISO dates starting with now's date
func Next(now time.Time, n int) []string {
	start := StartOfDay(now)
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(ISOLayout))
	}
	return dates
}
