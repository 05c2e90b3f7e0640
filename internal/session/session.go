// Package session validates raw start/end input before it may become a
// stored log. Validation failures are surfaced, never silently clamped.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/habitr/internal/dateutil"
)

// MaxSeconds is the hard cap on a single session: 6 hours.
const MaxSeconds = 6 * 60 * 60

var (
	ErrNonPositive = errors.New("session duration must be greater than zero")
	ErrTooLong     = errors.New("session exceeds maximum session length of 6 hours")
	ErrNoHabit     = errors.New("no habit selected")
)

// Input is the raw manual-record form: a calendar date plus separate
// hour/minute components for start and end, all in local time. Both
// times are anchored to Date; the midnight-cross rule resolves ends
// that fall on the next day.
type Input struct {
	HabitID   string
	Date      string // "YYYY-MM-DD"
	StartHour int
	StartMin  int
	EndHour   int
	EndMin    int
}

// Draft is a validated session ready to persist.
type Draft struct {
	HabitID         string
	Start           time.Time
	End             time.Time
	DurationSeconds int64
	AttributedDate  string
	// CrossesMidnight is informational: the UI warns that the whole
	// session is credited to the start day, but saving proceeds.
	CrossesMidnight bool
}

// Resolve combines the input components into instants, applies the
// midnight-cross rule, and validates the duration. The attributed date
// is always derived from the start instant, never the end.
func Resolve(in Input, loc *time.Location) (Draft, error) {
	if in.HabitID == "" {
		return Draft{}, ErrNoHabit
	}
	day, err := time.ParseInLocation(dateutil.DateLayout, in.Date, loc)
	if err != nil {
		return Draft{}, fmt.Errorf("invalid date %q: %w", in.Date, err)
	}
	if err := checkClock(in.StartHour, in.StartMin); err != nil {
		return Draft{}, fmt.Errorf("invalid start time: %w", err)
	}
	if err := checkClock(in.EndHour, in.EndMin); err != nil {
		return Draft{}, fmt.Errorf("invalid end time: %w", err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), in.StartHour, in.StartMin, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), in.EndHour, in.EndMin, 0, 0, loc)

	// End at or before start means the session ran past midnight:
	// 23:30-00:15 ends the next day.
	crossed := false
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
		crossed = true
	}

	duration := int64(end.Sub(start).Seconds())
	if duration <= 0 {
		return Draft{}, ErrNonPositive
	}
	if duration > MaxSeconds {
		return Draft{}, ErrTooLong
	}

	return Draft{
		HabitID:         in.HabitID,
		Start:           start,
		End:             end,
		DurationSeconds: duration,
		AttributedDate:  dateutil.AttributedDate(start),
		CrossesMidnight: crossed,
	}, nil
}

// FromSpan validates an already-concrete start/end pair, as produced by
// the live timer's review step. Adjusted durations go through the same
// rules as manual entry.
func FromSpan(habitID string, start, end time.Time) (Draft, error) {
	if habitID == "" {
		return Draft{}, ErrNoHabit
	}
	duration := int64(end.Sub(start).Seconds())
	if duration <= 0 {
		return Draft{}, ErrNonPositive
	}
	if duration > MaxSeconds {
		return Draft{}, ErrTooLong
	}
	return Draft{
		HabitID:         habitID,
		Start:           start,
		End:             end,
		DurationSeconds: duration,
		AttributedDate:  dateutil.AttributedDate(start),
		CrossesMidnight: dateutil.AttributedDate(end) != dateutil.AttributedDate(start),
	}, nil
}

func checkClock(hour, min int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour %d out of range", hour)
	}
	if min < 0 || min > 59 {
		return fmt.Errorf("minute %d out of range", min)
	}
	return nil
}
