package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/store"
)

// saveDebounce is how long typing must be idle before the note is
// written through to the store.
const saveDebounce = time.Second

// notepadModel is a scratchpad with debounced autosave. Each keystroke
// marks the buffer dirty and pushes the save deadline out; the shared
// 1s tick flushes once the deadline passes.
type notepadModel struct {
	store  *store.Store
	width  int
	height int

	input     textarea.Model
	loaded    bool
	dirty     bool
	saveAfter time.Time
	lastSaved time.Time
	saving    bool
}

func newNotepadModel(s *store.Store) notepadModel {
	ta := textarea.New()
	ta.Placeholder = "Jot anything down…"
	ta.CharLimit = 0
	return notepadModel{
		store: s,
		input: ta,
	}
}

func (m *notepadModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.SetWidth(w - 8)
	m.input.SetHeight(max(h-8, 3))
}

type noteLoadedMsg struct {
	content string
	savedAt time.Time
}

// load pulls the note once; afterwards the buffer is the source of
// truth so a refresh can't clobber unsaved typing.
func (m notepadModel) load() tea.Cmd {
	if m.loaded {
		return nil
	}
	return func() tea.Msg {
		content, savedAt, err := m.store.GetNote()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return noteLoadedMsg{content: content, savedAt: savedAt}
	}
}

func (m notepadModel) update(msg tea.Msg) (notepadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case noteLoadedMsg:
		if !m.loaded {
			m.input.SetValue(msg.content)
			m.lastSaved = msg.savedAt
			m.loaded = true
		}
		return m, nil

	case noteSavedMsg:
		m.saving = false
		m.lastSaved = msg.at
		return m, nil

	case tickMsg:
		if m.dirty && !m.saving && time.Time(msg).After(m.saveAfter) {
			m.dirty = false
			m.saving = true
			content := m.input.Value()
			return m, func() tea.Msg {
				if err := m.store.SaveNote(content); err != nil {
					return statusMsg{text: fmt.Sprintf("Note save failed: %v", err), isError: true}
				}
				return noteSavedMsg{at: time.Now()}
			}
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.dirty = true
		m.saveAfter = time.Now().Add(saveDebounce)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *notepadModel) focus() tea.Cmd {
	return m.input.Focus()
}

func (m *notepadModel) blur() {
	m.input.Blur()
}

func (m notepadModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Notepad")

	status := ""
	switch {
	case m.saving || m.dirty:
		status = warningStyle.Render("saving…")
	case !m.lastSaved.IsZero():
		status = mutedStyle.Render("saved " + m.lastSaved.Local().Format("15:04:05"))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", status)
	hint := mutedStyle.Render("  esc then 1-6: switch views")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", m.input.View(), "", hint),
	)
}
