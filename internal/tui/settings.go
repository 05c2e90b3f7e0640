package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/dateutil"
	"github.com/sadopc/habitr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weekStart *string
	dailyGoal *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ws, dg := "", ""
	return settingsModel{
		store:     s,
		weekStart: &ws,
		dailyGoal: &dg,
	}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := m.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	*m.weekStart = "sunday"
	*m.dailyGoal = "120"
	for _, s := range m.settings {
		switch s.Key {
		case "week_start":
			*m.weekStart = s.Value
		case "daily_goal":
			if secs, err := strconv.ParseInt(s.Value, 10, 64); err == nil {
				*m.dailyGoal = strconv.FormatInt(secs/60, 10)
			}
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Week starts on").
				Description("Drives week windows and the calendar grid.").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).
				Value(m.weekStart),
			huh.NewInput().
				Title("Daily goal (minutes)").
				Value(m.dailyGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil

		mins, err := strconv.ParseInt(strings.TrimSpace(*m.dailyGoal), 10, 64)
		if err != nil || mins < 0 {
			return m, func() tea.Msg {
				return statusMsg{text: "Invalid daily goal: enter whole minutes", isError: true}
			}
		}

		m.store.SetSetting("week_start", *m.weekStart)
		m.store.SetSetting("daily_goal", strconv.FormatInt(mins*60, 10))
		return m, tea.Batch(m.refresh(), func() tea.Msg {
			return statusMsg{text: "Settings saved"}
		})
	}

	return m, cmd
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for _, s := range m.settings {
		label, value := s.Key, s.Value
		switch s.Key {
		case "week_start":
			label = "Week starts on"
			if s.Value != "" {
				value = strings.ToUpper(s.Value[:1]) + s.Value[1:]
			}
		case "daily_goal":
			label = "Daily goal"
			if secs, err := strconv.ParseInt(s.Value, 10, 64); err == nil {
				value = dateutil.FormatDuration(secs)
			}
		}
		rows = append(rows, fmt.Sprintf("  %-18s %s", label, highlightStyle.Render(value)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
