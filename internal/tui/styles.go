package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// habitColors maps the semantic color tags stored on habits to display
// values. The tag itself is opaque everywhere outside this table.
var habitColors = map[string]lipgloss.Color{
	"indigo": lipgloss.Color("#6C63FF"),
	"teal":   lipgloss.Color("#2EC4B6"),
	"coral":  lipgloss.Color("#FF6B6B"),
	"amber":  lipgloss.Color("#F39C12"),
	"green":  lipgloss.Color("#2ECC71"),
	"red":    lipgloss.Color("#E74C3C"),
	"purple": lipgloss.Color("#9B59B6"),
	"blue":   lipgloss.Color("#3498DB"),
}

// habitColorTags is the pick order offered in forms.
var habitColorTags = []string{"indigo", "teal", "coral", "amber", "green", "red", "purple", "blue"}

// habitIconTags are semantic activity categories, matching the starter
// habit kinds offered at first run.
var habitIconTags = []string{"reading", "exercise", "building", "learning", "focus", "creative", "music", "target"}

func habitColor(tag string) lipgloss.Color {
	if c, ok := habitColors[tag]; ok {
		return c
	}
	return colorMuted
}

func habitDot(tag string) string {
	return lipgloss.NewStyle().Foreground(habitColor(tag)).Render("●")
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Timer
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess).
				Align(lipgloss.Center)

	timerPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWarning).
				Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
