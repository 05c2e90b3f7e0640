// Package aggregate computes per-day, per-period, and per-habit totals
// over in-memory log snapshots. Every function is pure over its inputs:
// filters are applied by the caller before aggregation, and no shared
// state is retained between calls.
package aggregate

import "github.com/sadopc/habitr/internal/store"

// UnknownHabitID buckets logs whose habit id is missing from the current
// habit set (e.g. deleted out of band). Totals are kept rather than
// dropped; rendering decides how to label the bucket.
const UnknownHabitID = "unknown"

// DailyTotal sums the durations of logs attributed to date.
func DailyTotal(logs []store.HabitLog, date string) int64 {
	var total int64
	for _, l := range logs {
		if l.AttributedDate == date {
			total += l.Duration
		}
	}
	return total
}

// PeriodTotal sums the durations of logs attributed to any date in the
// period. Membership is a set test; the order of dates is irrelevant.
func PeriodTotal(logs []store.HabitLog, periodDates []string) int64 {
	member := dateSet(periodDates)
	var total int64
	for _, l := range logs {
		if member[l.AttributedDate] {
			total += l.Duration
		}
	}
	return total
}

// PerHabitBreakdown splits the period total by habit. Every id in
// habitIDs gets an entry, zero included; logs referencing an id outside
// the set fall into the UnknownHabitID bucket, which is present only
// when non-empty.
func PerHabitBreakdown(logs []store.HabitLog, habitIDs []string, periodDates []string) map[string]int64 {
	member := dateSet(periodDates)
	known := make(map[string]bool, len(habitIDs))
	breakdown := make(map[string]int64, len(habitIDs))
	for _, id := range habitIDs {
		known[id] = true
		breakdown[id] = 0
	}
	for _, l := range logs {
		if !member[l.AttributedDate] {
			continue
		}
		if known[l.HabitID] {
			breakdown[l.HabitID] += l.Duration
		} else {
			breakdown[UnknownHabitID] += l.Duration
		}
	}
	return breakdown
}

// MaxDailyTotal returns the largest single-day total in the period, and
// 1 when there is no activity. The floor of 1 is a visualization
// contract: the value is used as a denominator for relative sizing, and
// an empty period must not divide by zero. It is not a general
// aggregation rule.
func MaxDailyTotal(logs []store.HabitLog, periodDates []string) int64 {
	var max int64
	for _, date := range periodDates {
		if t := DailyTotal(logs, date); t > max {
			max = t
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// ActiveHabitsInPeriod returns the ids of habits with at least one log
// in the period, in order of first occurrence. The order is only there
// to keep chart stacking and coloring stable across refreshes.
func ActiveHabitsInPeriod(logs []store.HabitLog, periodDates []string) []string {
	member := dateSet(periodDates)
	seen := make(map[string]bool)
	var ids []string
	for _, l := range logs {
		if !member[l.AttributedDate] || seen[l.HabitID] {
			continue
		}
		seen[l.HabitID] = true
		ids = append(ids, l.HabitID)
	}
	return ids
}

// FilterByHabit narrows a log snapshot to one habit. Selecting a habit
// in the UI is a pre-filter: aggregation itself never knows about the
// selection.
func FilterByHabit(logs []store.HabitLog, habitID string) []store.HabitLog {
	if habitID == "" {
		return logs
	}
	var out []store.HabitLog
	for _, l := range logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	return out
}

func dateSet(dates []string) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}
