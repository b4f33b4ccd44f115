// internal/ui/styles.go
package ui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"showcase/internal/agents"
)

var (
	// Colors
	Cyan     = lipgloss.Color("#00A2FF")
	Blue     = lipgloss.Color("#3B82F6")
	Green    = lipgloss.Color("#22C55E")
	Yellow   = lipgloss.Color("#EAB308")
	Orange   = lipgloss.Color("#F97316")
	Red      = lipgloss.Color("#EF4444")
	Purple   = lipgloss.Color("#A855F7")
	Dim      = lipgloss.Color("#555555")
	White    = lipgloss.Color("#FFFFFF")
	Muted    = lipgloss.Color("#A1A1AA")
	DarkGray = lipgloss.Color("#333333")

	// Page background the fades blend towards
	Background = lipgloss.Color("#121212")

	Accent = Cyan

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White)

	SystemStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(Dim)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatusStyle = lipgloss.NewStyle().
			Foreground(Green)

	// Header bar
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(DarkGray).
			Padding(0, 1)

	// Transcript terminal frame
	TerminalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGray)

	// Navigation controls
	FocusStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Underline(true).
			Bold(true)
)

// AgentColor returns the color for an agent identifier
func AgentColor(agent string) lipgloss.Color {
	switch agents.Parse(agent) {
	case agents.RoleAttackAnalysis:
		return Blue
	case agents.RoleExploitWriter:
		return Orange
	case agents.RoleExploitExecutor:
		return Red
	case agents.RoleKnowledgeAssistant:
		return Green
	case agents.RoleResultAnalyzer:
		return Purple
	case agents.RoleSecurityTeacher:
		return Yellow
	default:
		return White
	}
}

// AgentStyle returns the header style for an agent identifier
func AgentStyle(agent string, system bool) lipgloss.Style {
	if system {
		return SystemStyle
	}
	return lipgloss.NewStyle().Foreground(AgentColor(agent)).Bold(true)
}

// Fade blends c towards the page background. opacity 1 keeps c,
// opacity 0 returns the background.
func Fade(c lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	fg, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	bg, err := colorful.Hex(string(Background))
	if err != nil {
		return c
	}
	return lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex())
}
