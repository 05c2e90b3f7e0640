package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/habitr/internal/store"
)

// starterHabits are the suggestions offered on first run, before any
// habit exists. Tags come from the habitColorTags/habitIconTags tables.
var starterHabits = []struct {
	name  string
	color string
	icon  string
}{
	{"Reading", "blue", "reading"},
	{"Exercising", "amber", "exercise"},
	{"Coding", "indigo", "building"},
	{"Meditating", "green", "focus"},
	{"Learning", "purple", "learning"},
	{"Music", "coral", "music"},
}

// onboardingModel is the first-run overlay: a multi-select of starter
// habits. Skipping is fine; habits can always be created from the
// Habits view.
type onboardingModel struct {
	store  *store.Store
	width  int
	height int

	active bool
	form   *huh.Form

	// Form field pointer (survives value copies)
	selected *[]string
}

func newOnboardingModel(s *store.Store) onboardingModel {
	sel := []string{}
	return onboardingModel{
		store:    s,
		selected: &sel,
	}
}

func (o *onboardingModel) setSize(w, h int) {
	o.width = w
	o.height = h
}

// open activates the overlay with a fresh form.
func (o onboardingModel) open() onboardingModel {
	options := make([]huh.Option[string], len(starterHabits))
	for i, p := range starterHabits {
		options[i] = huh.NewOption(habitDot(p.color)+" "+p.name, p.name)
	}

	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Welcome! Pick a few habits to track").
				Description("space: toggle, enter: confirm, esc: skip").
				Options(options...).
				Value(o.selected),
		),
	).WithShowHelp(true).WithShowErrors(true)

	o.active = true
	return o
}

// initCmd starts the form; nil when the overlay is not showing.
func (o onboardingModel) initCmd() tea.Cmd {
	if !o.active || o.form == nil {
		return nil
	}
	return o.form.Init()
}

func (o onboardingModel) update(msg tea.Msg) (onboardingModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			o.active = false
			o.form = nil
			return o, nil
		}
	}

	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}

	if o.form.State == huh.StateCompleted {
		o.active = false
		o.form = nil
		return o, o.save()
	}

	return o, cmd
}

// save creates the chosen starter habits.
func (o onboardingModel) save() tea.Cmd {
	chosen := make(map[string]bool, len(*o.selected))
	for _, name := range *o.selected {
		chosen[name] = true
	}

	return func() tea.Msg {
		created := 0
		for _, p := range starterHabits {
			if !chosen[p.name] {
				continue
			}
			if _, err := o.store.CreateHabit(p.name, p.color, p.icon); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			created++
		}
		if created == 0 {
			return statusMsg{text: "No habits created. Press 4 to add your own."}
		}
		return habitSavedMsg{}
	}
}

func (o onboardingModel) view() string {
	w := o.width - 4
	if w < 20 {
		w = 20
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("First Run"),
		"",
		o.form.View(),
	)
	return activePanelStyle.Width(w).Render(content)
}
