package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/store"
)

type logsModel struct {
	store  *store.Store
	width  int
	height int

	logs   []store.HabitLog
	habits map[string]store.Habit
	cursor int
}

func newLogsModel(s *store.Store) logsModel {
	return logsModel{store: s}
}

func (m *logsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type logsDataMsg struct {
	logs   []store.HabitLog
	habits map[string]store.Habit
}

func (m logsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		logs, _ := m.store.ListLogs(store.LogFilter{Limit: 100})
		habits, _ := m.store.ListHabits(true)
		byID := make(map[string]store.Habit, len(habits))
		for _, h := range habits {
			byID[h.ID] = h
		}
		return logsDataMsg{logs: logs, habits: byID}
	}
}

func (m logsModel) selected() *store.HabitLog {
	if m.cursor >= len(m.logs) {
		return nil
	}
	l := m.logs[m.cursor]
	return &l
}

func (m logsModel) update(msg tea.Msg) (logsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logsDataMsg:
		m.logs = msg.logs
		m.habits = msg.habits
		if m.cursor >= len(m.logs) {
			m.cursor = max(0, len(m.logs)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.logs)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if l := m.selected(); l != nil {
				id := l.ID
				return m, func() tea.Msg {
					if err := m.store.DeleteLog(id); err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return logDeletedMsg{}
				}
			}
		}
	}
	return m, nil
}

// scrollOffset returns the first index of a window that keeps the
// cursor on screen: the list scrolls once the cursor walks past the
// last visible row, and never scrolls beyond the end.
func scrollOffset(cursor, total, visible int) int {
	if total <= visible {
		return 0
	}
	start := cursor - visible + 1
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

func (m logsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Session Log")

	if len(m.logs) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing recorded yet. Press r to record a session."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-4s %-12s %-20s %-13s %s", "Day", "Date", "Habit", "Time", "Duration")))

	visible := m.height - 10
	if visible < 5 {
		visible = 5
	}
	start := scrollOffset(m.cursor, len(m.logs), visible)
	end := min(start+visible, len(m.logs))

	if start > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d earlier", start)))
	}
	for i := start; i < end; i++ {
		l := m.logs[i]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := "(removed habit)"
		color := ""
		if h, ok := m.habits[l.HabitID]; ok {
			name = h.Name
			color = h.Color
		}
		span := fmt.Sprintf("%s-%s", l.StartTime.Local().Format("15:04"), l.EndTime.Local().Format("15:04"))
		rows = append(rows, style.Render(fmt.Sprintf("%s%-4s %-12s %s %-18s %-13s %s",
			cursor,
			dateutil.DayName(l.AttributedDate),
			l.AttributedDate,
			habitDot(color),
			name,
			span,
			dateutil.FormatDuration(l.Duration),
		)))
	}
	if end < len(m.logs) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(m.logs)-end)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  r: record  e: edit  d: delete  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
