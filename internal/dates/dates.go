// Package dates provides the calendar arithmetic shared by the reporting
// services. Monthly ranges are computed in UTC; the daily and weekly rollups
// use an explicit reference-timezone mode instead. The two modes are never
// mixed implicitly.
package dates

import (
	"fmt"
	"time"
)

// DayLayout is the canonical day-granularity date format.
const DayLayout = "2006-01-02"

// MonthRange returns the inclusive UTC bounds of a calendar month: the first
// day at 00:00:00.000 through the last day at 23:59:59.999. Days-in-month is
// derived from real calendar arithmetic, so leap Februaries come out right.
func MonthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month out of range: %d", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end, nil
}

// Days enumerates every calendar day from start through end inclusive, one
// entry per day at the start instant's clock time.
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayRange returns the half-open UTC interval [start of day, start of next
// day) containing t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a plain YYYY-MM-DD string as a UTC day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// DayBounds returns the inclusive bounds of the calendar day containing t in
// the given location: 00:00:00.000 through 23:59:59.999 local time. This is
// the reference-timezone variant used by the today/weekly rollups.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// LastNDays returns the trailing n calendar days in loc, oldest first and
// inclusive of the day containing now, as YYYY-MM-DD keys, together with the
// start instant of the window's first day.
func LastNDays(now time.Time, n int, loc *time.Location) ([]string, time.Time) {
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(n - 1))
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, first.AddDate(0, 0, i).Format(DayLayout))
	}
	return keys, first
}
