package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/aggregate"
	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	mode      dateutil.PeriodMode
	refDate   time.Time
	weekStart time.Weekday

	logs   []store.HabitLog // all logs in the period, unfiltered
	habits []store.Habit    // archived included for historical splits

	// selectedHabit pre-filters the log snapshot before aggregation.
	selectedHabit string
	splitCursor   int

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store:     s,
		mode:      dateutil.Week,
		refDate:   time.Now(),
		weekStart: time.Sunday,
		chart:     barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	logs      []store.HabitLog
	habits    []store.Habit
	weekStart time.Weekday
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		weekStart := m.store.WeekStart()
		dates := dateutil.PeriodDates(m.refDate, m.mode, weekStart)
		logs, _ := m.store.ListLogs(store.LogFilter{
			FromDate: dates[0],
			ToDate:   dates[len(dates)-1],
		})
		habits, _ := m.store.ListHabits(true)
		return statsDataMsg{logs: logs, habits: habits, weekStart: weekStart}
	}
}

func (m statsModel) periodDates() []string {
	return dateutil.PeriodDates(m.refDate, m.mode, m.weekStart)
}

// filteredLogs applies the habit pre-filter before any aggregation.
func (m statsModel) filteredLogs() []store.HabitLog {
	return aggregate.FilterByHabit(m.logs, m.selectedHabit)
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.logs = msg.logs
		m.habits = msg.habits
		m.weekStart = msg.weekStart
		if m.mode == dateutil.Week {
			m.buildChart()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.refDate = dateutil.Step(m.refDate, m.mode, -1)
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.refDate = dateutil.Step(m.refDate, m.mode, 1)
			return m, m.refresh()
		case key.Matches(msg, keys.Mode):
			if m.mode == dateutil.Week {
				m.mode = dateutil.Month
			} else {
				m.mode = dateutil.Week
			}
			return m, m.refresh()
		case key.Matches(msg, keys.Up):
			if m.splitCursor > 0 {
				m.splitCursor--
			}
		case key.Matches(msg, keys.Down):
			if m.splitCursor < len(m.splitRows())-1 {
				m.splitCursor++
			}
		case key.Matches(msg, keys.Enter):
			rows := m.splitRows()
			if m.splitCursor < len(rows) {
				id := rows[m.splitCursor].id
				if m.selectedHabit == id {
					m.selectedHabit = ""
				} else {
					m.selectedHabit = id
				}
				if m.mode == dateutil.Week {
					m.buildChart()
				}
			}
		case key.Matches(msg, keys.Back):
			if m.selectedHabit != "" {
				m.selectedHabit = ""
				if m.mode == dateutil.Week {
					m.buildChart()
				}
			}
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	logs := m.filteredLogs()
	dates := m.periodDates()

	habitByID := make(map[string]store.Habit, len(m.habits))
	for _, h := range m.habits {
		habitByID[h.ID] = h
	}

	// Stack bars in first-occurrence order so colors stay stable while
	// navigating between weeks.
	order := aggregate.ActiveHabitsInPeriod(logs, dates)

	var bars []barchart.BarData
	for _, date := range dates {
		var values []barchart.BarValue
		for _, id := range order {
			var secs int64
			for _, l := range logs {
				if l.AttributedDate == date && l.HabitID == id {
					secs += l.Duration
				}
			}
			if secs == 0 {
				continue
			}
			name := "(removed habit)"
			color := ""
			if h, ok := habitByID[id]; ok {
				name = h.Name
				color = h.Color
			}
			values = append(values, barchart.BarValue{
				Name:  name,
				Value: float64(secs) / 3600.0,
				Style: lipgloss.NewStyle().Foreground(habitColor(color)),
			})
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  dateutil.DayName(date),
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	weekTab := inactiveTabStyle.Render("Week")
	monthTab := inactiveTabStyle.Render("Month")
	if m.mode == dateutil.Week {
		weekTab = activeTabStyle.Render("Week")
	} else {
		monthTab = activeTabStyle.Render("Month")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, weekTab, monthTab)

	label := mutedStyle.Render(dateutil.PeriodLabel(m.refDate, m.mode, m.weekStart))

	scope := "Aggregate"
	if m.selectedHabit != "" {
		for _, h := range m.habits {
			if h.ID == m.selectedHabit {
				scope = h.Name
				break
			}
		}
	}
	total := aggregate.PeriodTotal(m.filteredLogs(), m.periodDates())
	totalLine := titleStyle.Render(scope) + "  " + highlightStyle.Render(dateutil.FormatDuration(total))

	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Stats"), "  ", modeTabs, "  ", label),
		totalLine,
	)

	var body string
	if m.mode == dateutil.Week {
		body = m.chart.View()
	} else {
		body = m.renderCalendar()
	}

	split := m.renderSplit()

	nav := mutedStyle.Render("  ←/→: navigate  m: week/month  ↑/↓ + enter: filter habit")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", split, "", nav),
	)
}

// renderCalendar draws the month as a 7-column grid. Cell glyphs are
// sized against the period's max daily total so relative activity is
// visible at a glance.
func (m statsModel) renderCalendar() string {
	logs := m.filteredLogs()
	dates := m.periodDates()
	maxDay := aggregate.MaxDailyTotal(logs, dates)
	grid := dateutil.CalendarGrid(m.refDate, m.weekStart)

	var header strings.Builder
	for _, name := range dateutil.DayHeaders(m.weekStart) {
		header.WriteString(fmt.Sprintf(" %-5s", name))
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(header.String()))

	var row strings.Builder
	col := 0
	flush := func() {
		if row.Len() > 0 {
			rows = append(rows, row.String())
			row.Reset()
		}
		col = 0
	}

	for _, cell := range grid {
		if cell.Day == 0 {
			row.WriteString(fmt.Sprintf(" %-5s", ""))
		} else {
			secs := aggregate.DailyTotal(logs, cell.Date)
			glyph := activityGlyph(secs, maxDay)
			row.WriteString(fmt.Sprintf(" %2d %s ", cell.Day, glyph))
		}
		col++
		if col == 7 {
			flush()
		}
	}
	flush()

	return strings.Join(rows, "\n")
}

// activityGlyph buckets a day's total against the period max into four
// sizes. maxDay is never zero; the aggregation engine floors it at 1.
func activityGlyph(secs, maxDay int64) string {
	if secs == 0 {
		return mutedStyle.Render("·")
	}
	ratio := float64(secs) / float64(maxDay)
	switch {
	case ratio > 0.66:
		return successStyle.Render("●")
	case ratio > 0.33:
		return highlightStyle.Render("◉")
	default:
		return highlightStyle.Render("○")
	}
}

type splitRow struct {
	id       string
	name     string
	color    string
	archived bool
	seconds  int64
}

// splitRows computes the per-habit breakdown for the period. Archived
// habits appear only when they have activity in the window; unknown
// habit ids keep their totals under a fallback row.
func (m statsModel) splitRows() []splitRow {
	dates := m.periodDates()
	ids := make([]string, len(m.habits))
	for i, h := range m.habits {
		ids[i] = h.ID
	}
	breakdown := aggregate.PerHabitBreakdown(m.logs, ids, dates)

	var rows []splitRow
	for _, h := range m.habits {
		secs := breakdown[h.ID]
		if h.Archived() && secs == 0 {
			continue
		}
		rows = append(rows, splitRow{
			id:       h.ID,
			name:     h.Name,
			color:    h.Color,
			archived: h.Archived(),
			seconds:  secs,
		})
	}
	if unknown := breakdown[aggregate.UnknownHabitID]; unknown > 0 {
		rows = append(rows, splitRow{
			id:      aggregate.UnknownHabitID,
			name:    "(removed habit)",
			seconds: unknown,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].seconds > rows[j].seconds
	})
	return rows
}

func (m statsModel) renderSplit() string {
	rows := m.splitRows()
	if len(rows) == 0 {
		return mutedStyle.Render("  No habits yet")
	}

	var out []string
	out = append(out, titleStyle.Render("Activity Split"))
	for i, r := range rows {
		cursor := "  "
		style := normalItemStyle
		if i == m.splitCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := r.name
		if r.archived {
			name += " (archived)"
		}
		marker := " "
		if m.selectedHabit == r.id {
			marker = highlightStyle.Render("◆")
		}
		out = append(out, style.Render(fmt.Sprintf("%s%s %s %-24s %s",
			cursor, marker, habitDot(r.color), name, dateutil.FormatDuration(r.seconds))))
	}
	return strings.Join(out, "\n")
}
