package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertLog is a test helper that inserts a log on a given attributed date.
func insertLog(t *testing.T, s *Store, habitID, date string, durationSecs int64) *HabitLog {
	t.Helper()
	start, err := time.Parse("2006-01-02 15:04", date+" 09:00")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	end := start.Add(time.Duration(durationSecs) * time.Second)
	l, err := s.CreateLog(habitID, start, end, durationSecs, date)
	if err != nil {
		t.Fatalf("insert log: %v", err)
	}
	return l
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/habitr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Habits
// ============================================================

func TestCreateAndGetHabit(t *testing.T) {
	s := newTestStore(t)

	h, err := s.CreateHabit("Reading", "teal", "reading")
	if err != nil {
		t.Fatal(err)
	}
	if h.ID == "" {
		t.Fatal("empty habit id")
	}
	if h.Name != "Reading" || h.Color != "teal" || h.Icon != "reading" {
		t.Fatalf("habit = %+v", h)
	}
	if h.Archived() {
		t.Fatal("new habit should not be archived")
	}

	got, err := s.GetHabit(h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Reading" {
		t.Fatalf("got %+v", got)
	}
}

func TestCreateHabitEmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateHabit("", "teal", "reading"); err == nil {
		t.Fatal("empty name accepted")
	}
}

func TestListHabitsSortedByName(t *testing.T) {
	s := newTestStore(t)
	s.CreateHabit("Writing", "coral", "creative")
	s.CreateHabit("Exercise", "green", "exercise")
	s.CreateHabit("Meditation", "purple", "focus")

	habits, err := s.ListHabits(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 3 {
		t.Fatalf("got %d habits", len(habits))
	}
	if habits[0].Name != "Exercise" || habits[1].Name != "Meditation" || habits[2].Name != "Writing" {
		t.Fatalf("order: %s, %s, %s", habits[0].Name, habits[1].Name, habits[2].Name)
	}
}

func TestListHabitsEmpty(t *testing.T) {
	s := newTestStore(t)
	habits, err := s.ListHabits(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Fatalf("got %d habits", len(habits))
	}
}

func TestUpdateHabit(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Reading", "teal", "reading")

	if err := s.UpdateHabit(h.ID, "Deep Reading", "indigo", "focus"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetHabit(h.ID)
	if got.Name != "Deep Reading" || got.Color != "indigo" || got.Icon != "focus" {
		t.Fatalf("got %+v", got)
	}

	if err := s.UpdateHabit(h.ID, "", "indigo", "focus"); err == nil {
		t.Fatal("empty name accepted on update")
	}
}

func TestArchiveHabit(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Reading", "teal", "reading")
	insertLog(t, s, h.ID, "2024-06-03", 3600)

	if err := s.ArchiveHabit(h.ID); err != nil {
		t.Fatal(err)
	}

	// Gone from the active list, still present with includeArchived.
	active, _ := s.ListHabits(false)
	if len(active) != 0 {
		t.Fatalf("archived habit still listed: %d", len(active))
	}
	all, _ := s.ListHabits(true)
	if len(all) != 1 || !all[0].Archived() {
		t.Fatalf("all = %+v", all)
	}

	// History survives archival.
	logs, _ := s.ListLogs(LogFilter{HabitID: h.ID})
	if len(logs) != 1 {
		t.Fatalf("logs lost on archive: %d", len(logs))
	}
}

// ============================================================
// Logs
// ============================================================

func TestCreateAndGetLog(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Reading", "teal", "reading")

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	l, err := s.CreateLog(h.ID, start, start.Add(time.Hour), 3600, "2024-06-03")
	if err != nil {
		t.Fatal(err)
	}
	if l.ID == "" {
		t.Fatal("empty log id")
	}
	if l.Duration != 3600 || l.AttributedDate != "2024-06-03" {
		t.Fatalf("log = %+v", l)
	}
	if !l.StartTime.Equal(start) {
		t.Fatalf("start = %v", l.StartTime)
	}

	got, err := s.GetLog(l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.HabitID != h.ID {
		t.Fatalf("got %+v", got)
	}
}

func TestListLogsFilters(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateHabit("Reading", "teal", "reading")
	b, _ := s.CreateHabit("Exercise", "green", "exercise")

	insertLog(t, s, a.ID, "2024-06-02", 600)
	insertLog(t, s, a.ID, "2024-06-03", 1200)
	insertLog(t, s, b.ID, "2024-06-03", 1800)
	insertLog(t, s, a.ID, "2024-06-10", 2400)

	byHabit, _ := s.ListLogs(LogFilter{HabitID: a.ID})
	if len(byHabit) != 3 {
		t.Fatalf("habit filter: %d logs", len(byHabit))
	}

	byRange, _ := s.ListLogs(LogFilter{FromDate: "2024-06-02", ToDate: "2024-06-08"})
	if len(byRange) != 3 {
		t.Fatalf("range filter: %d logs", len(byRange))
	}

	both, _ := s.ListLogs(LogFilter{HabitID: a.ID, FromDate: "2024-06-03", ToDate: "2024-06-03"})
	if len(both) != 1 || both[0].Duration != 1200 {
		t.Fatalf("combined filter: %+v", both)
	}

	limited, _ := s.ListLogs(LogFilter{Limit: 2})
	if len(limited) != 2 {
		t.Fatalf("limit: %d logs", len(limited))
	}
}

func TestListLogsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Reading", "teal", "reading")
	insertLog(t, s, h.ID, "2024-06-02", 600)
	insertLog(t, s, h.ID, "2024-06-05", 600)
	insertLog(t, s, h.ID, "2024-06-03", 600)

	logs, err := s.ListLogs(LogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 3 {
		t.Fatalf("got %d logs", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].StartTime.After(logs[i-1].StartTime) {
			t.Fatal("logs not sorted newest first")
		}
	}
}

func TestUpdateLog(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateHabit("Reading", "teal", "reading")
	b, _ := s.CreateHabit("Exercise", "green", "exercise")
	l := insertLog(t, s, a.ID, "2024-06-03", 3600)

	start := time.Date(2024, 6, 4, 20, 0, 0, 0, time.UTC)
	err := s.UpdateLog(l.ID, b.ID, start, start.Add(30*time.Minute), 1800, "2024-06-04")
	if err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetLog(l.ID)
	if got.HabitID != b.ID || got.Duration != 1800 || got.AttributedDate != "2024-06-04" {
		t.Fatalf("got %+v", got)
	}
}

func TestDeleteLog(t *testing.T) {
	s := newTestStore(t)
	h, _ := s.CreateHabit("Reading", "teal", "reading")
	l := insertLog(t, s, h.ID, "2024-06-03", 3600)

	if err := s.DeleteLog(l.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetLog(l.ID); err == nil {
		t.Fatal("deleted log still readable")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	ws, err := s.GetSetting("week_start")
	if err != nil {
		t.Fatal(err)
	}
	if ws != "sunday" {
		t.Fatalf("week_start default = %q", ws)
	}
	if s.WeekStart() != time.Sunday {
		t.Fatal("WeekStart default should be Sunday")
	}
	if s.DailyGoal() != 7200 {
		t.Fatalf("daily_goal default = %d", s.DailyGoal())
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("week_start", "monday"); err != nil {
		t.Fatal(err)
	}
	if s.WeekStart() != time.Monday {
		t.Fatal("WeekStart should reflect the update")
	}

	if err := s.SetSetting("theme", "dark"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting("theme")
	if v != "dark" {
		t.Fatalf("new key = %q", v)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 2 {
		t.Fatalf("got %d settings, want the seeded defaults", len(settings))
	}
}

func TestDailyGoalBadValue(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("daily_goal", "not-a-number")
	if s.DailyGoal() != 0 {
		t.Fatal("unparsable goal should read as 0")
	}
}

// ============================================================
// Note
// ============================================================

func TestNoteRoundTrip(t *testing.T) {
	s := newTestStore(t)

	content, _, err := s.GetNote()
	if err != nil {
		t.Fatal(err)
	}
	if content != "" {
		t.Fatalf("fresh note = %q", content)
	}

	if err := s.SaveNote("remember to stretch"); err != nil {
		t.Fatal(err)
	}
	content, updatedAt, err := s.GetNote()
	if err != nil {
		t.Fatal(err)
	}
	if content != "remember to stretch" {
		t.Fatalf("note = %q", content)
	}
	if updatedAt.IsZero() {
		t.Fatal("updated_at not set")
	}
}
