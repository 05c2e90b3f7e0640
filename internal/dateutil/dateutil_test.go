package dateutil

import (
	"sort"
	"testing"
	"time"
)

// ============================================================
// Attributed date
// ============================================================

func TestAttributedDateUsesStartFields(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	start := time.Date(2024, 3, 10, 23, 40, 0, 0, loc)

	got := AttributedDate(start)
	if got != "2024-03-10" {
		t.Fatalf("AttributedDate = %q, want 2024-03-10", got)
	}

	// The same instant in UTC is already March 11; slicing an ISO
	// string would mis-attribute it. Local fields must win.
	if start.UTC().Day() != 11 {
		t.Fatal("test setup: instant should be next day in UTC")
	}
}

func TestAttributedDateZeroPadding(t *testing.T) {
	d := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if got := AttributedDate(d); got != "2024-01-05" {
		t.Fatalf("AttributedDate = %q, want 2024-01-05", got)
	}
}

func TestDayName(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-06-03", "Mon"},
		{"2024-03-10", "Sun"},
		{"2024-03-16", "Sat"},
		{"2024-02-29", "Thu"}, // leap day
	}
	for _, tt := range tests {
		if got := DayName(tt.date); got != tt.want {
			t.Errorf("DayName(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestDayNameInvalid(t *testing.T) {
	if got := DayName("not-a-date"); got != "" {
		t.Fatalf("DayName on garbage = %q, want empty", got)
	}
}

// ============================================================
// Week windows
// ============================================================

func TestStartOfWeekSunday(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	wed := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	start := StartOfWeek(wed, time.Sunday)
	if AttributedDate(start) != "2024-03-10" {
		t.Fatalf("StartOfWeek = %s, want 2024-03-10", AttributedDate(start))
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Fatal("StartOfWeek should be at start of day")
	}
}

func TestStartOfWeekMonday(t *testing.T) {
	wed := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	start := StartOfWeek(wed, time.Monday)
	if AttributedDate(start) != "2024-03-11" {
		t.Fatalf("StartOfWeek = %s, want 2024-03-11", AttributedDate(start))
	}
}

func TestStartOfWeekOnWeekStartDay(t *testing.T) {
	sun := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if AttributedDate(StartOfWeek(sun, time.Sunday)) != "2024-03-10" {
		t.Fatal("a Sunday's Sunday-start week should begin on itself")
	}

	mon := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	if AttributedDate(StartOfWeek(mon, time.Monday)) != "2024-03-11" {
		t.Fatal("a Monday's Monday-start week should begin on itself")
	}
}

func TestEndOfWeek(t *testing.T) {
	wed := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	if AttributedDate(EndOfWeek(wed, time.Sunday)) != "2024-03-16" {
		t.Fatalf("EndOfWeek = %s, want 2024-03-16", AttributedDate(EndOfWeek(wed, time.Sunday)))
	}
}

// ============================================================
// Period dates
// ============================================================

func TestPeriodDatesWeekProperties(t *testing.T) {
	// Any reference day must yield 7 ascending gap-free dates that
	// include the reference date itself.
	for offset := 0; offset < 14; offset++ {
		ref := time.Date(2024, 2, 20, 13, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		dates := PeriodDates(ref, Week, time.Sunday)

		if len(dates) != 7 {
			t.Fatalf("week of %s: got %d dates, want 7", AttributedDate(ref), len(dates))
		}
		if !sort.StringsAreSorted(dates) {
			t.Fatalf("week of %s: dates not ascending: %v", AttributedDate(ref), dates)
		}
		for i := 1; i < 7; i++ {
			prev, _ := ParseDate(dates[i-1])
			cur, _ := ParseDate(dates[i])
			if !cur.Equal(prev.AddDate(0, 0, 1)) {
				t.Fatalf("week of %s: gap between %s and %s", AttributedDate(ref), dates[i-1], dates[i])
			}
		}

		found := false
		for _, d := range dates {
			if d == AttributedDate(ref) {
				found = true
			}
		}
		if !found {
			t.Fatalf("week of %s does not contain the reference date: %v", AttributedDate(ref), dates)
		}
	}
}

func TestPeriodDatesWeekIdempotent(t *testing.T) {
	// Navigating to any day within a week yields the same window.
	ref := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	fromRef := PeriodDates(ref, Week, time.Sunday)
	fromStart := PeriodDates(StartOfWeek(ref, time.Sunday), Week, time.Sunday)

	for i := range fromRef {
		if fromRef[i] != fromStart[i] {
			t.Fatalf("windows differ at %d: %s vs %s", i, fromRef[i], fromStart[i])
		}
	}
}

func TestPeriodDatesMonthLengths(t *testing.T) {
	tests := []struct {
		ref  time.Time
		want int
	}{
		{time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 29}, // leap February
		{time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), 28}, // non-leap February
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 31},
	}
	for _, tt := range tests {
		dates := PeriodDates(tt.ref, Month, time.Sunday)
		if len(dates) != tt.want {
			t.Errorf("%s: got %d dates, want %d", tt.ref.Format("2006-01"), len(dates), tt.want)
		}
		if dates[0] != tt.ref.Format("2006-01")+"-01" {
			t.Errorf("%s: first date %s, want the 1st", tt.ref.Format("2006-01"), dates[0])
		}
	}
}

func TestPeriodDatesMonthSequential(t *testing.T) {
	dates := PeriodDates(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Month, time.Sunday)
	for i, d := range dates {
		parsed, err := ParseDate(d)
		if err != nil {
			t.Fatalf("bad date %q: %v", d, err)
		}
		if parsed.Day() != i+1 {
			t.Fatalf("dates[%d] = %s, want day %d", i, d, i+1)
		}
	}
}

// ============================================================
// Labels and navigation
// ============================================================

func TestPeriodLabelWeek(t *testing.T) {
	ref := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	got := PeriodLabel(ref, Week, time.Sunday)
	if got != "Mar 10 - Mar 16, 2024" {
		t.Fatalf("PeriodLabel = %q", got)
	}
}

func TestPeriodLabelWeekSpanningMonths(t *testing.T) {
	// Week of 2024-03-31 (Sunday) runs into April.
	ref := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	got := PeriodLabel(ref, Week, time.Sunday)
	if got != "Mar 31 - Apr 6, 2024" {
		t.Fatalf("PeriodLabel = %q", got)
	}
}

func TestPeriodLabelMonth(t *testing.T) {
	ref := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	if got := PeriodLabel(ref, Month, time.Sunday); got != "March 2024" {
		t.Fatalf("PeriodLabel = %q", got)
	}
}

func TestStepWeek(t *testing.T) {
	ref := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)
	if AttributedDate(Step(ref, Week, 1)) != "2024-03-20" {
		t.Fatal("forward week step should add 7 days")
	}
	if AttributedDate(Step(ref, Week, -1)) != "2024-03-06" {
		t.Fatal("backward week step should subtract 7 days")
	}
}

func TestStepMonth(t *testing.T) {
	ref := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if AttributedDate(Step(ref, Month, 1)) != "2024-07-15" {
		t.Fatal("month step should preserve day of month when valid")
	}
	if AttributedDate(Step(ref, Month, -1)) != "2024-05-15" {
		t.Fatal("backward month step should preserve day of month")
	}
}

func TestStepMonthRollover(t *testing.T) {
	// Jan 31 + 1 month normalizes past short February, standard
	// calendar-arithmetic rollover.
	ref := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if AttributedDate(Step(ref, Month, 1)) != "2025-03-03" {
		t.Fatalf("got %s", AttributedDate(Step(ref, Month, 1)))
	}
}

// ============================================================
// Calendar grid
// ============================================================

func TestCalendarGridSundayStart(t *testing.T) {
	// 2024-03-01 is a Friday: 5 leading blanks under a Sunday start.
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	grid := CalendarGrid(ref, time.Sunday)

	if len(grid) != 5+31 {
		t.Fatalf("grid length %d, want 36", len(grid))
	}
	for i := 0; i < 5; i++ {
		if grid[i].Day != 0 {
			t.Fatalf("cell %d should be blank", i)
		}
	}
	if grid[5].Day != 1 || grid[5].Date != "2024-03-01" {
		t.Fatalf("first day cell = %+v", grid[5])
	}
	if last := grid[len(grid)-1]; last.Day != 31 || last.Date != "2024-03-31" {
		t.Fatalf("last day cell = %+v", last)
	}
}

func TestCalendarGridMondayStart(t *testing.T) {
	// Same month under a Monday start: Friday is offset 4.
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	grid := CalendarGrid(ref, time.Monday)

	if len(grid) != 4+31 {
		t.Fatalf("grid length %d, want 35", len(grid))
	}
	if grid[3].Day != 0 || grid[4].Day != 1 {
		t.Fatalf("day 1 should sit at index 4, got grid[4].Day = %d", grid[4].Day)
	}
}

func TestCalendarGridNoLeadingBlanks(t *testing.T) {
	// 2024-09-01 is a Sunday: no blanks under a Sunday start.
	ref := time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC)
	grid := CalendarGrid(ref, time.Sunday)
	if len(grid) != 30 {
		t.Fatalf("grid length %d, want 30", len(grid))
	}
	if grid[0].Day != 1 {
		t.Fatal("first cell should be day 1")
	}
}

func TestDayHeadersMatchGridConvention(t *testing.T) {
	sun := DayHeaders(time.Sunday)
	if sun[0] != "Sun" || sun[6] != "Sat" {
		t.Fatalf("Sunday headers = %v", sun)
	}
	mon := DayHeaders(time.Monday)
	if mon[0] != "Mon" || mon[6] != "Sun" {
		t.Fatalf("Monday headers = %v", mon)
	}
}

func TestParseWeekStart(t *testing.T) {
	if ParseWeekStart("monday") != time.Monday {
		t.Fatal("monday should map to Monday")
	}
	if ParseWeekStart("sunday") != time.Sunday {
		t.Fatal("sunday should map to Sunday")
	}
	if ParseWeekStart("wat") != time.Sunday {
		t.Fatal("unknown values should fall back to Sunday")
	}
}
