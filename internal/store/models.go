package store

import "time"

// Habit is a user-defined tracked activity. Color and Icon are semantic
// tags; rendering decides what they look like.
type Habit struct {
	ID        string
	Name      string
	Color     string
	Icon      string
	CreatedAt time.Time
	DeletedAt *time.Time // set = archived, kept for history
}

// Archived reports whether the habit has been soft-deleted.
func (h Habit) Archived() bool {
	return h.DeletedAt != nil
}

// HabitLog is one completed span of tracked time. AttributedDate is the
// local calendar date of StartTime, fixed at save time.
type HabitLog struct {
	ID             string
	HabitID        string
	StartTime      time.Time
	EndTime        time.Time
	Duration       int64 // seconds
	AttributedDate string
	CreatedAt      time.Time
}

type Setting struct {
	Key   string
	Value string
}

// LogFilter narrows ListLogs queries.
type LogFilter struct {
	HabitID  string
	FromDate string // attributed_date >= FromDate, "YYYY-MM-DD"
	ToDate   string // attributed_date <= ToDate
	Limit    int
}
