package session

import (
	"errors"
	"testing"
	"time"
)

func TestResolveSimpleSession(t *testing.T) {
	d, err := Resolve(Input{
		HabitID: "h1", Date: "2024-06-03",
		StartHour: 9, StartMin: 0, EndHour: 10, EndMin: 30,
	}, time.UTC)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.DurationSeconds != 5400 {
		t.Errorf("duration = %d, want 5400", d.DurationSeconds)
	}
	if d.AttributedDate != "2024-06-03" {
		t.Errorf("attributed date = %s", d.AttributedDate)
	}
	if d.CrossesMidnight {
		t.Error("same-day session marked as crossing midnight")
	}
}

func TestResolveMidnightCross(t *testing.T) {
	// 23:30 to 00:15: the end clock reads before the start clock, so
	// the end rolls to the next day. The whole session is credited to
	// the start day.
	d, err := Resolve(Input{
		HabitID: "h1", Date: "2024-03-10",
		StartHour: 23, StartMin: 30, EndHour: 0, EndMin: 15,
	}, time.UTC)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.DurationSeconds != 2700 {
		t.Errorf("duration = %d, want 2700", d.DurationSeconds)
	}
	if d.AttributedDate != "2024-03-10" {
		t.Errorf("attributed date = %s, want the start day", d.AttributedDate)
	}
	if !d.CrossesMidnight {
		t.Error("midnight cross not flagged")
	}
	if d.End.Day() != 11 {
		t.Errorf("end day = %d, want 11", d.End.Day())
	}
}

func TestResolveEqualTimesRollToFullDay(t *testing.T) {
	// end == start also rolls forward, producing a 24h span, which the
	// cap then rejects.
	_, err := Resolve(Input{
		HabitID: "h1", Date: "2024-03-10",
		StartHour: 9, StartMin: 0, EndHour: 9, EndMin: 0,
	}, time.UTC)
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("err = %v, want ErrTooLong", err)
	}
}

func TestResolveCapBoundary(t *testing.T) {
	// Exactly six hours is allowed.
	d, err := Resolve(Input{
		HabitID: "h1", Date: "2024-03-10",
		StartHour: 9, StartMin: 0, EndHour: 15, EndMin: 0,
	}, time.UTC)
	if err != nil {
		t.Fatalf("6h session rejected: %v", err)
	}
	if d.DurationSeconds != MaxSeconds {
		t.Errorf("duration = %d, want %d", d.DurationSeconds, MaxSeconds)
	}

	// One minute over is not.
	_, err = Resolve(Input{
		HabitID: "h1", Date: "2024-03-10",
		StartHour: 9, StartMin: 0, EndHour: 15, EndMin: 1,
	}, time.UTC)
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("err = %v, want ErrTooLong", err)
	}
}

func TestResolveRejectsMissingHabit(t *testing.T) {
	_, err := Resolve(Input{Date: "2024-03-10", StartHour: 9, EndHour: 10}, time.UTC)
	if !errors.Is(err, ErrNoHabit) {
		t.Fatalf("err = %v, want ErrNoHabit", err)
	}
}

func TestResolveRejectsBadDate(t *testing.T) {
	_, err := Resolve(Input{HabitID: "h1", Date: "10/03/2024", StartHour: 9, EndHour: 10}, time.UTC)
	if err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestResolveRejectsBadClock(t *testing.T) {
	cases := []Input{
		{HabitID: "h1", Date: "2024-03-10", StartHour: 24, EndHour: 10},
		{HabitID: "h1", Date: "2024-03-10", StartHour: -1, EndHour: 10},
		{HabitID: "h1", Date: "2024-03-10", StartHour: 9, StartMin: 60, EndHour: 10},
		{HabitID: "h1", Date: "2024-03-10", StartHour: 9, EndHour: 10, EndMin: 99},
	}
	for i, in := range cases {
		if _, err := Resolve(in, time.UTC); err == nil {
			t.Errorf("case %d: out-of-range clock accepted", i)
		}
	}
}

func TestFromSpan(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	d, err := FromSpan("h1", start, start.Add(21600*time.Second))
	if err != nil {
		t.Fatalf("exact-cap span rejected: %v", err)
	}
	if d.DurationSeconds != 21600 {
		t.Errorf("duration = %d", d.DurationSeconds)
	}

	if _, err := FromSpan("h1", start, start.Add(21601*time.Second)); !errors.Is(err, ErrTooLong) {
		t.Errorf("over-cap: err = %v, want ErrTooLong", err)
	}
	if _, err := FromSpan("h1", start, start); !errors.Is(err, ErrNonPositive) {
		t.Errorf("zero span: err = %v, want ErrNonPositive", err)
	}
	if _, err := FromSpan("h1", start, start.Add(-time.Minute)); !errors.Is(err, ErrNonPositive) {
		t.Errorf("negative span: err = %v, want ErrNonPositive", err)
	}
	if _, err := FromSpan("", start, start.Add(time.Hour)); !errors.Is(err, ErrNoHabit) {
		t.Errorf("missing habit: err = %v, want ErrNoHabit", err)
	}
}

func TestFromSpanMidnightFlag(t *testing.T) {
	start := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)
	d, err := FromSpan("h1", start, start.Add(45*time.Minute))
	if err != nil {
		t.Fatalf("FromSpan: %v", err)
	}
	if !d.CrossesMidnight {
		t.Error("span ending next day not flagged")
	}
	if d.AttributedDate != "2024-03-10" {
		t.Errorf("attributed date = %s, want the start day", d.AttributedDate)
	}
}
