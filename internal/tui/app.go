package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/export"
	"github.com/sadopc/habitr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard  dashboardModel
	stats      statsModel
	logs       logsModel
	habits     habitsModel
	notepad    notepadModel
	settings   settingsModel
	record     recordModel
	onboarding onboardingModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		store:      s,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s),
		stats:      newStatsModel(s),
		logs:       newLogsModel(s),
		habits:     newHabitsModel(s),
		notepad:    newNotepadModel(s),
		settings:   newSettingsModel(s),
		record:     newRecordModel(s),
		onboarding: newOnboardingModel(s),
		help:       h,
	}

	// First run with nothing tracked yet: offer the starter habits.
	if habits, err := s.ListHabits(true); err == nil && len(habits) == 0 {
		a.onboarding = a.onboarding.open()
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.onboarding.initCmd(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.logs.setSize(a.width, contentHeight)
		a.habits.setSize(a.width, contentHeight)
		a.notepad.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.record.setSize(a.width, contentHeight)
		a.onboarding.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// First-run overlay captures everything while open.
		if a.onboarding.active {
			var cmd tea.Cmd
			a.onboarding, cmd = a.onboarding.update(msg)
			return a, cmd
		}

		// Record overlay captures everything while open.
		if a.record.active {
			var cmd tea.Cmd
			a.record, cmd = a.record.update(msg)
			return a, cmd
		}

		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// The notepad owns the keyboard while focused; esc releases it.
		if a.activeView == viewNotepad && a.notepad.input.Focused() {
			if msg.String() == "esc" {
				a.notepad.blur()
				return a, nil
			}
			var cmd tea.Cmd
			a.notepad, cmd = a.notepad.update(msg)
			return a, cmd
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Record):
			habits, _ := a.store.ListHabits(false)
			if len(habits) == 0 {
				a.status = "No habits yet. Press 4 to create one first."
				a.statusError = true
				return a, nil
			}
			var cmd tea.Cmd
			a.record, cmd = a.record.open(habits, nil)
			return a, cmd
		case key.Matches(msg, keys.Edit):
			if a.activeView == viewLogs {
				if l := a.logs.selected(); l != nil {
					habits, _ := a.store.ListHabits(true)
					var cmd tea.Cmd
					a.record, cmd = a.record.open(habits, l)
					return a, cmd
				}
				return a, nil
			}
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewLogs
			return a, a.logs.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewHabits
			return a, a.habits.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewNotepad
			return a, tea.Batch(a.notepad.load(), a.notepad.focus())
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 6
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		// Ticks always reach the timer and the notepad's debounced save,
		// whatever view is on screen.
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.notepad, cmd = a.notepad.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case timerStartedMsg:
		a.status = "Tracking " + msg.habit.Name
		a.statusError = false
		return a, nil

	case timerCompletedMsg:
		a.status = "Session saved"
		a.statusError = false
		if msg.log != nil {
			a.status = fmt.Sprintf("Session saved: %s on %s", dateutil.FormatDuration(msg.log.Duration), msg.log.AttributedDate)
		}
		return a, a.dashboard.loadData()

	case timerCancelledMsg:
		a.status = "Timer discarded"
		a.statusError = false
		return a, nil

	case logSavedMsg:
		a.status = "Session saved"
		a.statusError = false
		if msg.edited {
			a.status = "Session updated"
		}
		if msg.crossedMidnight {
			// Informational only: the session was still saved.
			a.status += " — crosses midnight, credited to the start day"
		}
		return a, tea.Batch(a.dashboard.loadData(), a.logs.refresh(), a.stats.refresh())

	case logDeletedMsg:
		a.status = "Session deleted"
		a.statusError = false
		return a, tea.Batch(a.dashboard.loadData(), a.logs.refresh())

	case habitSavedMsg:
		return a, a.dashboard.loadData()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewLogs:
		a.logs, cmd = a.logs.update(msg)
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewNotepad:
		a.notepad, cmd = a.notepad.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewHabits:
		return a.habits.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewStats:
		return a.stats.refresh()
	case viewLogs:
		return a.logs.refresh()
	case viewHabits:
		return a.habits.refresh()
	case viewNotepad:
		return a.notepad.load()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewStats:
		content = a.stats.view()
	case viewLogs:
		content = a.logs.view()
	case viewHabits:
		content = a.habits.view()
	case viewNotepad:
		content = a.notepad.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.onboarding.active {
		content = a.onboarding.view()
	} else if a.record.active {
		content = a.record.view()
	} else if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("habitr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	if a.dashboard.isRunning() {
		elapsed := dateutil.FormatClock(a.dashboard.elapsed())
		timerInfo = successStyle.Render(" ● " + elapsed)
		if a.dashboard.isPaused() {
			timerInfo = warningStyle.Render(" ⏸ " + elapsed)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		logs, err := a.store.ListLogs(store.LogFilter{})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		// Build habit lookup, archived included so old logs keep names.
		habits := make(map[string]*store.Habit)
		hlist, _ := a.store.ListHabits(true)
		for i := range hlist {
			habits[hlist[i].ID] = &hlist[i]
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("habitr-export-%s.csv", dateStr))
			if err := export.ToCSV(logs, habits, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("habitr-export-%s.json", dateStr))
			if err := export.ToJSON(logs, habits, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
