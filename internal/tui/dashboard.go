package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/aggregate"
	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/notify"
	"github.com/sadopc/habitr/internal/session"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/timer"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	timer      *timer.Timer
	timerHabit *store.Habit

	todayDate  string
	todayTotal int64
	dailyGoal  int64
	breakdown  map[string]int64
	habits     []store.Habit // active only, for the picker
	allHabits  []store.Habit // archived included, for the split
	recentLogs []store.HabitLog

	// Habit picker state
	picking      bool
	pickerCursor int

	// Review step: the stopped timer's duration can be adjusted before
	// commit, but the adjusted value passes the same validation as any
	// manual entry.
	reviewing     bool
	reviewForm    *huh.Form
	reviewMinutes *string
	formActive    bool
}

func newDashboardModel(s *store.Store) dashboardModel {
	mins := ""
	return dashboardModel{
		store:         s,
		reviewMinutes: &mins,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.timer != nil }
func (d dashboardModel) isPaused() bool  { return d.timer != nil && d.timer.Paused() }

func (d dashboardModel) elapsed() int64 {
	if d.timer == nil {
		return 0
	}
	return d.timer.Elapsed()
}

type dashboardDataMsg struct {
	todayDate  string
	todayTotal int64
	dailyGoal  int64
	breakdown  map[string]int64
	habits     []store.Habit // active only, for the picker
	allHabits  []store.Habit // archived included, for the split
	recentLogs []store.HabitLog
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := dateutil.AttributedDate(time.Now())
		logs, _ := d.store.ListLogs(store.LogFilter{FromDate: today, ToDate: today})
		habits, _ := d.store.ListHabits(false)

		// The split aggregates over every habit, archived included, so
		// a habit archived after logging today keeps its own line.
		allHabits, _ := d.store.ListHabits(true)
		ids := make([]string, len(allHabits))
		for i, h := range allHabits {
			ids[i] = h.ID
		}

		recent, _ := d.store.ListLogs(store.LogFilter{Limit: 5})

		return dashboardDataMsg{
			todayDate:  today,
			todayTotal: aggregate.DailyTotal(logs, today),
			dailyGoal:  d.store.DailyGoal(),
			breakdown:  aggregate.PerHabitBreakdown(logs, ids, []string{today}),
			habits:     habits,
			allHabits:  allHabits,
			recentLogs: recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.reviewing && d.reviewForm != nil {
		return d.updateReview(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayDate = msg.todayDate
		d.todayTotal = msg.todayTotal
		d.dailyGoal = msg.dailyGoal
		d.breakdown = msg.breakdown
		d.habits = msg.habits
		d.allHabits = msg.allHabits
		d.recentLogs = msg.recentLogs
		return d, nil

	case tickMsg:
		if d.timer != nil && d.timer.Tick(time.Time(msg)) {
			// Hit the 6h cap: finalize at exactly the cap, no review.
			return d.finalizeTimer(session.MaxSeconds, true)
		}
		return d, nil

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if d.timer != nil {
				return d, nil
			}
			if len(d.habits) == 0 {
				return d, func() tea.Msg {
					return statusMsg{text: "No habits yet. Press 4 to go to Habits and create one.", isError: true}
				}
			}
			if len(d.habits) == 1 {
				return d.startTimer(d.habits[0])
			}
			d.picking = true
			d.pickerCursor = 0
			return d, nil

		case key.Matches(msg, keys.Stop):
			if d.timer == nil {
				return d, nil
			}
			return d.showReview()

		case key.Matches(msg, keys.Pause):
			if d.timer == nil {
				return d, nil
			}
			if d.timer.Paused() {
				d.timer.Resume(time.Now())
			} else {
				d.timer.Pause()
			}
			return d, nil

		case key.Matches(msg, keys.Back):
			if d.timer != nil {
				d.timer = nil
				d.timerHabit = nil
				return d, func() tea.Msg { return timerCancelledMsg{} }
			}
		}
	}
	return d, nil
}

func (d dashboardModel) updatePicker(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.pickerCursor > 0 {
				d.pickerCursor--
			}
		case key.Matches(msg, keys.Down):
			if d.pickerCursor < len(d.habits)-1 {
				d.pickerCursor++
			}
		case key.Matches(msg, keys.Enter):
			h := d.habits[d.pickerCursor]
			d.picking = false
			return d.startTimer(h)
		case key.Matches(msg, keys.Back):
			d.picking = false
		}
	}
	return d, nil
}

func (d dashboardModel) startTimer(h store.Habit) (dashboardModel, tea.Cmd) {
	habit := h
	d.timer = timer.New(h.ID, time.Now())
	d.timerHabit = &habit
	return d, func() tea.Msg { return timerStartedMsg{habit: &habit} }
}

func (d dashboardModel) showReview() (dashboardModel, tea.Cmd) {
	d.timer.Pause()
	*d.reviewMinutes = strconv.FormatInt((d.timer.Elapsed()+59)/60, 10)

	d.reviewForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Duration (minutes)").
				Description("Adjust before saving; the 6 hour cap still applies.").
				Value(d.reviewMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.reviewing = true
	d.formActive = true
	return d, d.reviewForm.Init()
}

func (d dashboardModel) updateReview(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			// Back to a paused timer, nothing persisted.
			d.reviewing = false
			d.formActive = false
			d.reviewForm = nil
			return d, nil
		}
	}

	form, cmd := d.reviewForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.reviewForm = f
	}

	if d.reviewForm.State == huh.StateCompleted {
		d.reviewing = false
		d.formActive = false
		d.reviewForm = nil

		mins, err := strconv.ParseInt(strings.TrimSpace(*d.reviewMinutes), 10, 64)
		if err != nil {
			return d, func() tea.Msg {
				return statusMsg{text: "Invalid duration: enter whole minutes", isError: true}
			}
		}
		return d.finalizeTimer(mins*60, false)
	}

	return d, cmd
}

// finalizeTimer converts the running timer into a stored log. The
// reviewed duration goes through the standard session validator; a
// rejected adjustment leaves the timer paused for another attempt.
func (d dashboardModel) finalizeTimer(durationSeconds int64, capped bool) (dashboardModel, tea.Cmd) {
	t := d.timer
	habit := d.timerHabit

	draft, err := t.Complete(durationSeconds)
	if err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Not saved: %v", err), isError: true}
		}
	}

	d.timer = nil
	d.timerHabit = nil

	return d, tea.Batch(
		func() tea.Msg {
			log, err := d.store.CreateLog(draft.HabitID, draft.Start, draft.End, draft.DurationSeconds, draft.AttributedDate)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			if capped && habit != nil {
				notify.TimerCapped(habit.Name)
			}
			return timerCompletedMsg{log: log}
		},
		d.loadData(),
	)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.reviewing && d.reviewForm != nil {
		title := titleStyle.Render("Review Session")
		habitLine := ""
		if d.timerHabit != nil {
			habitLine = highlightStyle.Render(d.timerHabit.Name) + mutedStyle.Render("  tracked "+dateutil.FormatClock(d.elapsed()))
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, habitLine, "", d.reviewForm.View())
		return activePanelStyle.Width(contentWidth).Render(content)
	}

	timerPanel := d.renderTimerPanel(contentWidth)
	summaryPanel := d.renderTodayPanel(contentWidth)

	var bottomPanel string
	if d.picking {
		bottomPanel = d.renderHabitPicker(contentWidth)
	} else {
		bottomPanel = d.renderRecentPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, summaryPanel, bottomPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.timer != nil {
		timeStr := dateutil.FormatClock(d.timer.Elapsed())

		var timeDisplay, indicator string
		if d.timer.Paused() {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			indicator = warningStyle.Render("⏸  PAUSED")
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  TRACKING")
		}

		habitLine := ""
		if d.timerHabit != nil {
			habitLine = habitDot(d.timerHabit.Color) + " " + highlightStyle.Render(d.timerHabit.Name)
		}

		remaining := mutedStyle.Render("auto-saves at " + dateutil.FormatDuration(session.MaxSeconds))

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			habitLine,
			remaining,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start tracking, r to record manually")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(dateutil.FormatDuration(d.todayTotal))
	header := fmt.Sprintf("%s  %s", title, total)

	if d.dailyGoal > 0 {
		pct := d.todayTotal * 100 / d.dailyGoal
		goalLine := fmt.Sprintf("goal %s  %d%%", dateutil.FormatDuration(d.dailyGoal), pct)
		if pct >= 100 {
			header += "  " + successStyle.Render(goalLine)
		} else {
			header += "  " + mutedStyle.Render(goalLine)
		}
	}

	var rows []string
	rows = append(rows, header)

	any := false
	for _, h := range d.allHabits {
		secs := d.breakdown[h.ID]
		if secs == 0 {
			continue
		}
		any = true
		name := h.Name
		if h.Archived() {
			name += " (archived)"
		}
		rows = append(rows, fmt.Sprintf("  %s %-20s %s", habitDot(h.Color), name, dateutil.FormatDuration(secs)))
	}
	if unknown := d.breakdown[aggregate.UnknownHabitID]; unknown > 0 {
		any = true
		rows = append(rows, fmt.Sprintf("  %s %-20s %s", mutedStyle.Render("●"), "(removed habit)", dateutil.FormatDuration(unknown)))
	}
	if !any {
		rows = append(rows, mutedStyle.Render("No activity yet today"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(d.recentLogs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing recorded yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, l := range d.recentLogs {
		name := "(removed habit)"
		color := ""
		if h, err := d.store.GetHabit(l.HabitID); err == nil {
			name = h.Name
			color = h.Color
		}
		row := fmt.Sprintf("  %s %s %s  %-16s %s",
			habitDot(color),
			dateutil.DayName(l.AttributedDate),
			l.AttributedDate,
			name,
			dateutil.FormatDuration(l.Duration),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderHabitPicker(w int) string {
	title := titleStyle.Render("Select Habit")

	var rows []string
	rows = append(rows, title)
	for i, h := range d.habits {
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, habitDot(h.Color), h.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
