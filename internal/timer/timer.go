// Package timer holds the live-timer state machine. All transitions take
// an explicit instant so the logic stays deterministic under test; the
// caller samples the wall clock.
package timer

import (
	"time"

	"github.com/sadopc/habitr/internal/session"
)

// Timer accumulates elapsed seconds for one in-progress session. Elapsed
// time is computed from deltas between clock samples, not a fixed
// per-tick increment, so missed or delayed ticks (a suspended terminal,
// a backgrounded process) don't lose time.
type Timer struct {
	HabitID string
	Start   time.Time

	elapsed   int64
	lastCheck time.Time
	paused    bool
	done      bool
}

// New starts a timer for habitID at now.
func New(habitID string, now time.Time) *Timer {
	return &Timer{
		HabitID:   habitID,
		Start:     now,
		lastCheck: now,
	}
}

// Tick folds the time since the last sample into the elapsed total.
// It reports true once elapsed reaches the session cap; the timer then
// freezes at exactly the cap and must be completed or cancelled.
func (t *Timer) Tick(now time.Time) (capped bool) {
	if t.paused || t.done {
		return false
	}
	delta := int64(now.Sub(t.lastCheck).Seconds())
	if delta > 0 {
		t.elapsed += delta
		t.lastCheck = now
	}
	if t.elapsed >= session.MaxSeconds {
		t.elapsed = session.MaxSeconds
		t.done = true
		return true
	}
	return false
}

func (t *Timer) Pause() {
	t.paused = true
}

// Resume restarts accumulation. The pause gap is dropped by resetting
// the sample point to now.
func (t *Timer) Resume(now time.Time) {
	if !t.paused {
		return
	}
	t.paused = false
	t.lastCheck = now
}

func (t *Timer) Paused() bool { return t.paused }

// Elapsed returns the accumulated whole seconds.
func (t *Timer) Elapsed() int64 { return t.elapsed }

// Complete finalizes the timer into a validated draft. durationSeconds
// is the user-reviewed duration, which may differ from Elapsed when the
// user adjusted it; it still passes the standard session validation, so
// a zero or over-cap adjustment is rejected here like any other entry.
func (t *Timer) Complete(durationSeconds int64) (session.Draft, error) {
	end := t.Start.Add(time.Duration(durationSeconds) * time.Second)
	return session.FromSpan(t.HabitID, t.Start, end)
}
