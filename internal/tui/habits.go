package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/store"
)

type habitsModel struct {
	store  *store.Store
	width  int
	height int

	habits       []store.Habit
	cursor       int
	showArchived bool

	formActive bool
	form       *huh.Form
	editingID  string // habit ID being edited, empty for create

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string
	formIcon  *string
}

func newHabitsModel(s *store.Store) habitsModel {
	name, color, icon := "", habitColorTags[0], habitIconTags[len(habitIconTags)-1]
	return habitsModel{
		store:     s,
		formName:  &name,
		formColor: &color,
		formIcon:  &icon,
	}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type habitsDataMsg struct {
	habits []store.Habit
}

func (m habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits, _ := m.store.ListHabits(m.showArchived)
		return habitsDataMsg{habits: habits}
	}
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.habits = msg.habits
		if m.cursor >= len(m.habits) {
			m.cursor = max(0, len(m.habits)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.habits) > 0 {
				h := m.habits[m.cursor]
				return m.showForm(&h)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.habits) > 0 {
				h := m.habits[m.cursor]
				if !h.Archived() {
					m.store.ArchiveHabit(h.ID)
					return m, tea.Batch(m.refresh(), func() tea.Msg {
						return statusMsg{text: "Archived " + h.Name + " — history is kept"}
					})
				}
			}
		case key.Matches(msg, keys.Tab):
			// handled by app; listed here for clarity of the view keys
		case msg.String() == "a":
			m.showArchived = !m.showArchived
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m habitsModel) showForm(h *store.Habit) (habitsModel, tea.Cmd) {
	if h != nil {
		m.editingID = h.ID
		*m.formName = h.Name
		*m.formColor = h.Color
		*m.formIcon = h.Icon
	} else {
		m.editingID = ""
		*m.formName = ""
		*m.formColor = habitColorTags[0]
		*m.formIcon = habitIconTags[len(habitIconTags)-1]
	}

	colorOptions := make([]huh.Option[string], len(habitColorTags))
	for i, c := range habitColorTags {
		colorOptions[i] = huh.NewOption(habitDot(c)+" "+c, c)
	}
	iconOptions := make([]huh.Option[string], len(habitIconTags))
	for i, tag := range habitIconTags {
		iconOptions[i] = huh.NewOption(tag, tag)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(m.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
			huh.NewSelect[string]().Title("Category").Options(iconOptions...).Value(m.formIcon),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
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
		name := strings.TrimSpace(*m.formName)
		if name == "" {
			return m, func() tea.Msg {
				return statusMsg{text: "Habit name must not be empty", isError: true}
			}
		}
		if m.editingID != "" {
			m.store.UpdateHabit(m.editingID, name, *m.formColor, *m.formIcon)
		} else {
			m.store.CreateHabit(name, *m.formColor, *m.formIcon)
		}
		return m, tea.Batch(m.refresh(), func() tea.Msg { return habitSavedMsg{} })
	}

	return m, cmd
}

func (m habitsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Habit")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Habits")
	if m.showArchived {
		title = titleStyle.Render("Habits (incl. archived)")
	}

	if len(m.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create your first one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %-12s %-10s", "", "Name", "Category", "Color")))

	for i, h := range m.habits {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := h.Name
		if h.Archived() {
			name += " (archived)"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s %-12s %-10s", cursor, habitDot(h.Color), name, h.Icon, h.Color)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: archive  a: show archived"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
