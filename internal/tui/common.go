package tui

import (
	"time"

	"github.com/sadopc/habitr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewStats
	viewLogs
	viewHabits
	viewNotepad
	viewSettings
)

var viewNames = []string{"Dashboard", "Stats", "Logs", "Habits", "Notepad", "Settings"}

// --- Messages ---

type timerStartedMsg struct {
	habit *store.Habit
}

type timerCompletedMsg struct {
	log *store.HabitLog
}

type timerCancelledMsg struct{}

type logSavedMsg struct {
	crossedMidnight bool
	edited          bool
}

type logDeletedMsg struct{}

type habitSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type noteSavedMsg struct {
	at time.Time
}

type exportDoneMsg struct {
	path string
}
