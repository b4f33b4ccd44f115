// internal/ui/help.go
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"showcase/internal/agents"
	"showcase/internal/commands"
)

// Help overlay content and rendering

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Yellow).
				MarginTop(1)

	// Keybindings
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Slash commands
	helpCmdStyle = lipgloss.NewStyle().
			Foreground(Purple)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(White)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(Dim)
)

// HelpContent returns the formatted help overlay content
func HelpContent(width, height int) string {
	var content strings.Builder

	content.WriteString(helpTitleStyle.Render("SHOWCASE HELP"))
	content.WriteString("\n\n")

	content.WriteString(helpSectionStyle.Render("KEYBINDINGS"))
	content.WriteString("\n\n")

	for _, row := range keys.FullHelp() {
		for _, b := range row {
			h := b.Help()
			key := helpKeyStyle.Width(12).Render(h.Key)
			content.WriteString("  " + key + "  " + helpDescStyle.Render(h.Desc) + "\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("SLASH COMMANDS"))
	content.WriteString("\n\n")

	for _, u := range commands.Usages() {
		desc := u.Desc
		if len(u.Aliases) > 0 {
			desc += " (also " + strings.Join(u.Aliases, ", ") + ")"
		}
		cmdStr := helpCmdStyle.Width(12).Render(u.Syntax)
		content.WriteString("  " + cmdStr + "  " + helpDescStyle.Render(desc) + "\n")
	}

	content.WriteString("\n")
	content.WriteString(helpSectionStyle.Render("AGENTS"))
	content.WriteString("\n\n")

	for _, role := range agents.Known() {
		icon, _ := agents.Icon(role)
		symbol := AgentStyle(role.String(), false).Width(4).Render(icon)
		content.WriteString("  " + symbol + "  " + helpDescStyle.Render(agents.DisplayName(role.String())) + "\n")
	}

	content.WriteString("\n")
	footer := helpDimStyle.Render("Press ? or Esc to close this help")
	content.WriteString(lipgloss.PlaceHorizontal(max(width-8, 0), lipgloss.Center, footer))

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 3).
		MaxWidth(width - 10).
		MaxHeight(height - 4)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlayStyle.Render(content.String()),
	)
}

func (m Model) renderHelp() string {
	return HelpContent(m.width, m.height)
}
