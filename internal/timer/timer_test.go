package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/habitr/internal/session"
)

var t0 = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func TestTickAccumulatesDeltas(t *testing.T) {
	tm := New("h1", t0)

	tm.Tick(t0.Add(1 * time.Second))
	tm.Tick(t0.Add(2 * time.Second))
	tm.Tick(t0.Add(3 * time.Second))
	if tm.Elapsed() != 3 {
		t.Fatalf("elapsed = %d, want 3", tm.Elapsed())
	}
}

func TestTickCatchesUpAfterMissedTicks(t *testing.T) {
	// A single late sample credits the whole gap, not one second.
	tm := New("h1", t0)
	tm.Tick(t0.Add(10 * time.Second))
	if tm.Elapsed() != 10 {
		t.Fatalf("elapsed = %d, want 10", tm.Elapsed())
	}
}

func TestPauseStopsAccumulation(t *testing.T) {
	tm := New("h1", t0)
	tm.Tick(t0.Add(5 * time.Second))

	tm.Pause()
	if !tm.Paused() {
		t.Fatal("Paused() = false after Pause")
	}
	tm.Tick(t0.Add(60 * time.Second))
	if tm.Elapsed() != 5 {
		t.Fatalf("elapsed advanced while paused: %d", tm.Elapsed())
	}

	// Resume drops the paused gap entirely.
	tm.Resume(t0.Add(60 * time.Second))
	tm.Tick(t0.Add(62 * time.Second))
	if tm.Elapsed() != 7 {
		t.Fatalf("elapsed = %d, want 7", tm.Elapsed())
	}
}

func TestResumeWithoutPauseIsNoop(t *testing.T) {
	tm := New("h1", t0)
	tm.Tick(t0.Add(2 * time.Second))
	tm.Resume(t0.Add(100 * time.Second))
	tm.Tick(t0.Add(101 * time.Second))
	if tm.Elapsed() != 101 {
		t.Fatalf("elapsed = %d, want 101", tm.Elapsed())
	}
}

func TestCapFreezesAtMax(t *testing.T) {
	tm := New("h1", t0)

	if capped := tm.Tick(t0.Add(session.MaxSeconds*time.Second - time.Second)); capped {
		t.Fatal("capped one second early")
	}
	if capped := tm.Tick(t0.Add(session.MaxSeconds * time.Second)); !capped {
		t.Fatal("not capped at the limit")
	}
	if tm.Elapsed() != session.MaxSeconds {
		t.Fatalf("elapsed = %d, want exactly %d", tm.Elapsed(), session.MaxSeconds)
	}

	// Further ticks neither advance nor re-fire.
	if capped := tm.Tick(t0.Add(session.MaxSeconds*time.Second + time.Hour)); capped {
		t.Fatal("cap fired twice")
	}
	if tm.Elapsed() != session.MaxSeconds {
		t.Fatalf("elapsed moved past cap: %d", tm.Elapsed())
	}
}

func TestCapClampsOvershoot(t *testing.T) {
	// A long gap past the cap still freezes at exactly the cap.
	tm := New("h1", t0)
	if capped := tm.Tick(t0.Add(10 * time.Hour)); !capped {
		t.Fatal("overshoot not capped")
	}
	if tm.Elapsed() != session.MaxSeconds {
		t.Fatalf("elapsed = %d, want %d", tm.Elapsed(), session.MaxSeconds)
	}
}

func TestComplete(t *testing.T) {
	tm := New("h1", t0)
	tm.Tick(t0.Add(time.Hour))

	d, err := tm.Complete(3600)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if d.HabitID != "h1" {
		t.Errorf("habit = %s", d.HabitID)
	}
	if d.DurationSeconds != 3600 {
		t.Errorf("duration = %d", d.DurationSeconds)
	}
	if !d.Start.Equal(t0) {
		t.Errorf("start = %v, want %v", d.Start, t0)
	}
	if d.AttributedDate != "2024-06-03" {
		t.Errorf("attributed date = %s", d.AttributedDate)
	}
}

func TestCompleteValidatesAdjustedDuration(t *testing.T) {
	tm := New("h1", t0)
	tm.Tick(t0.Add(time.Hour))

	if _, err := tm.Complete(0); !errors.Is(err, session.ErrNonPositive) {
		t.Errorf("zero duration: err = %v, want ErrNonPositive", err)
	}
	if _, err := tm.Complete(session.MaxSeconds + 1); !errors.Is(err, session.ErrTooLong) {
		t.Errorf("over-cap duration: err = %v, want ErrTooLong", err)
	}
}
