package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire form for attributed dates ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// PeriodMode selects the window a reference date is expanded into.
type PeriodMode int

const (
	Week PeriodMode = iota
	Month
)

// AttributedDate returns the calendar date a session counts toward: the
// date of its start instant, read from the instant's own wall-clock fields.
// A session that starts at 23:40 and ends past midnight still belongs to
// the day it started.
func AttributedDate(start time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", start.Year(), int(start.Month()), start.Day())
}

// ParseDate parses a "YYYY-MM-DD" string as a local calendar date.
// The string is never treated as UTC; slicing an RFC3339 instant would
// shift dates for zones west of UTC near midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// DayName returns the Sun..Sat label for a "YYYY-MM-DD" date string,
// computed from the date's own calendar fields.
func DayName(dateStr string) string {
	d, err := ParseDate(dateStr)
	if err != nil {
		return ""
	}
	return d.Weekday().String()[:3]
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent weekStart day on or before t,
// at start of day.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	d := startOfDay(t)
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -back)
}

// EndOfWeek returns the last day of t's week, at start of day.
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 6)
}

// PeriodDates expands a reference date into the inclusive, ascending list
// of calendar dates in its period. Week mode yields the 7 dates from
// StartOfWeek; month mode yields every date of the reference month.
func PeriodDates(ref time.Time, mode PeriodMode, weekStart time.Weekday) []string {
	if mode == Week {
		dates := make([]string, 0, 7)
		start := StartOfWeek(ref, weekStart)
		for i := 0; i < 7; i++ {
			dates = append(dates, AttributedDate(start.AddDate(0, 0, i)))
		}
		return dates
	}

	year, month := ref.Year(), ref.Month()
	last := daysIn(year, month)
	dates := make([]string, 0, last)
	for d := 1; d <= last; d++ {
		dates = append(dates, AttributedDate(time.Date(year, month, d, 0, 0, 0, 0, ref.Location())))
	}
	return dates
}

// daysIn returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PeriodLabel renders the display heading for a period:
// "Jan 5 - Jan 11, 2025" for weeks, "January 2025" for months.
func PeriodLabel(ref time.Time, mode PeriodMode, weekStart time.Weekday) string {
	if mode == Week {
		start := StartOfWeek(ref, weekStart)
		end := EndOfWeek(ref, weekStart)
		return fmt.Sprintf("%s %d - %s %d, %d",
			start.Month().String()[:3], start.Day(),
			end.Month().String()[:3], end.Day(), end.Year())
	}
	return fmt.Sprintf("%s %d", ref.Month(), ref.Year())
}

// Step moves a reference date by delta periods. Weeks shift by 7 days;
// months use calendar arithmetic with standard day-of-month rollover
// (Jan 31 stepped forward lands in early March).
func Step(ref time.Time, mode PeriodMode, delta int) time.Time {
	if mode == Week {
		return ref.AddDate(0, 0, 7*delta)
	}
	return ref.AddDate(0, delta, 0)
}

// GridCell is one slot of the month calendar. A zero Day marks a leading
// blank before the 1st.
type GridCell struct {
	Day  int
	Date string
}

// CalendarGrid lays the reference month out as a flat 7-column sequence:
// leading blanks up to the month's first weekday (relative to weekStart),
// then one cell per day. No trailing padding; consumers wrap rows.
func CalendarGrid(ref time.Time, weekStart time.Weekday) []GridCell {
	year, month := ref.Year(), ref.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	last := daysIn(year, month)

	grid := make([]GridCell, 0, offset+last)
	for i := 0; i < offset; i++ {
		grid = append(grid, GridCell{})
	}
	for d := 1; d <= last; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, ref.Location())
		grid = append(grid, GridCell{Day: d, Date: AttributedDate(date)})
	}
	return grid
}

// DayHeaders returns the seven weekday labels starting at weekStart, so
// column headers always agree with the grid's leading-blank convention.
func DayHeaders(weekStart time.Weekday) []string {
	headers := make([]string, 7)
	for i := 0; i < 7; i++ {
		headers[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
	}
	return headers
}

// ParseWeekStart maps the week_start setting value to a weekday.
// Unrecognized values fall back to Sunday, the default convention.
func ParseWeekStart(s string) time.Weekday {
	if s == "monday" {
		return time.Monday
	}
	return time.Sunday
}
