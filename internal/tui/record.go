package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/session"
	"github.com/sadopc/habitr/internal/store"
)

// recordModel is the manual-record overlay: a date, a start time, and an
// end time, pushed through the session validator on submit. The same
// form serves editing, which replaces the log wholesale.
type recordModel struct {
	store  *store.Store
	width  int
	height int

	active    bool
	editingID string // non-empty = edit mode
	form      *huh.Form

	// Form field pointers (survive value copies)
	habitID *string
	date    *string
	start   *string
	end     *string
}

func newRecordModel(s *store.Store) recordModel {
	habitID, date, start, end := "", "", "", ""
	return recordModel{
		store:   s,
		habitID: &habitID,
		date:    &date,
		start:   &start,
		end:     &end,
	}
}

func (r *recordModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

// open shows the form. A non-nil log prefills it for editing.
func (r recordModel) open(habits []store.Habit, log *store.HabitLog) (recordModel, tea.Cmd) {
	if log != nil {
		r.editingID = log.ID
		*r.habitID = log.HabitID
		start := log.StartTime.Local()
		end := log.EndTime.Local()
		*r.date = dateutil.AttributedDate(start)
		*r.start = start.Format("15:04")
		*r.end = end.Format("15:04")
	} else {
		r.editingID = ""
		if len(habits) > 0 {
			*r.habitID = habits[0].ID
		} else {
			*r.habitID = ""
		}
		*r.date = dateutil.AttributedDate(time.Now())
		*r.start = "09:00"
		*r.end = "10:00"
	}

	options := make([]huh.Option[string], len(habits))
	for i, h := range habits {
		options[i] = huh.NewOption(h.Name, h.ID)
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Habit").Options(options...).Value(r.habitID),
			huh.NewInput().Title("Date").Description("YYYY-MM-DD").Value(r.date),
			huh.NewInput().Title("Start").Description("HH:MM, 24h").Value(r.start),
			huh.NewInput().Title("End").Description("HH:MM; earlier than start means past midnight").Value(r.end),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.active = true
	return r, r.form.Init()
}

func (r recordModel) update(msg tea.Msg) (recordModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.active = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.active = false
		r.form = nil
		return r, r.save()
	}

	return r, cmd
}

func (r recordModel) save() tea.Cmd {
	habitID := *r.habitID
	date := strings.TrimSpace(*r.date)
	startStr := *r.start
	endStr := *r.end
	editingID := r.editingID

	return func() tea.Msg {
		startH, startM, err := parseClock(startStr)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Invalid start time: %v", err), isError: true}
		}
		endH, endM, err := parseClock(endStr)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Invalid end time: %v", err), isError: true}
		}

		draft, err := session.Resolve(session.Input{
			HabitID:   habitID,
			Date:      date,
			StartHour: startH,
			StartMin:  startM,
			EndHour:   endH,
			EndMin:    endM,
		}, time.Local)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Not saved: %v", err), isError: true}
		}

		if editingID != "" {
			err = r.store.UpdateLog(editingID, draft.HabitID, draft.Start, draft.End, draft.DurationSeconds, draft.AttributedDate)
		} else {
			_, err = r.store.CreateLog(draft.HabitID, draft.Start, draft.End, draft.DurationSeconds, draft.AttributedDate)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		return logSavedMsg{crossedMidnight: draft.CrossesMidnight, edited: editingID != ""}
	}
}

func parseClock(s string) (hour, min int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour, min, nil
}

func (r recordModel) view() string {
	title := titleStyle.Render("Record Activity")
	if r.editingID != "" {
		title = titleStyle.Render("Edit Activity")
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", r.form.View())
	return activePanelStyle.Width(r.width - 4).Render(content)
}
