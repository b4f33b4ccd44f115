// internal/ui/transcript.go
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"showcase/internal/agents"
	"showcase/internal/cards"
)

// renderedMessage caches one message's lines at the panel width
type renderedMessage struct {
	header string
	body   []string
	plain  []string // header + body without styling, for fades
}

func (r renderedMessage) height() int {
	return 1 + len(r.body)
}

// newMarkdownRenderer builds the glamour renderer for message bodies.
// A nil renderer means plain text.
func newMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	if width < 10 {
		width = 10
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
}

// renderMessage lays out a single transcript message
func renderMessage(msg cards.Message, width int, md *glamour.TermRenderer) renderedMessage {
	var header string
	name := msg.Agent
	if icon, ok := agents.IconFor(msg.Agent); ok {
		name = icon + " " + name
	}
	header = AgentStyle(msg.Agent, msg.System).Render(name)
	if msg.System {
		header = lipgloss.PlaceHorizontal(width, lipgloss.Center, header)
	}

	body := renderBody(msg, width, md)
	if msg.System {
		for i, line := range body {
			body[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, SystemStyle.Render(line))
		}
	}

	plain := make([]string, 0, 1+len(body))
	plain = append(plain, ansi.Strip(header))
	for _, line := range body {
		plain = append(plain, ansi.Strip(line))
	}

	return renderedMessage{header: header, body: body, plain: plain}
}

func renderBody(msg cards.Message, width int, md *glamour.TermRenderer) []string {
	text := strings.TrimSpace(msg.Message)
	if md != nil && !msg.System {
		if out, err := md.Render(text); err == nil {
			return strings.Split(strings.Trim(out, "\n"), "\n")
		}
	}

	// Plain fallback: wrap at width with a two column indent
	wrapped := lipgloss.NewStyle().Width(max(width-2, 1)).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = "  " + strings.TrimRight(line, " ")
	}
	return lines
}

// transcriptPanel is the scrollable terminal showing one card's messages
type transcriptPanel struct {
	Viewport viewport.Model
	messages []renderedMessage
}

func newTranscriptPanel(card cards.Card, width, height int, md *glamour.TermRenderer) *transcriptPanel {
	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	vp.MouseWheelEnabled = true

	p := &transcriptPanel{Viewport: vp}
	for _, msg := range card.Messages {
		p.messages = append(p.messages, renderMessage(msg, width, md))
	}
	p.Refresh(func(int) float64 { return 1 })
	return p
}

// GotoBottom scrolls to the last message
func (p *transcriptPanel) GotoBottom() {
	p.Viewport.GotoBottom()
}

// Scroll moves the transcript by delta lines
func (p *transcriptPanel) Scroll(delta int) {
	p.Viewport.SetYOffset(p.Viewport.YOffset + delta)
}

// AtBottom reports whether the last line is visible
func (p *transcriptPanel) AtBottom() bool {
	return p.Viewport.AtBottom()
}

// Refresh rebuilds the panel content. progress reports each message's
// entrance completion; unfinished messages are faded and slid down,
// keeping the total height constant so the scroll offset holds.
func (p *transcriptPanel) Refresh(progress func(i int) float64) {
	var lines []string
	for i, m := range p.messages {
		lines = append(lines, messageLines(m, progress(i))...)
		lines = append(lines, "")
	}
	p.Viewport.SetContent(strings.Join(lines, "\n"))
}

// messageLines returns the message's lines at a given entrance progress
func messageLines(m renderedMessage, progress float64) []string {
	if progress >= 1 {
		return append([]string{m.header}, m.body...)
	}

	h := m.height()
	out := make([]string, h)
	// slide up from two rows below
	shift := int((1 - progress) * 2.99)
	color := Fade(White, progress)
	style := lipgloss.NewStyle().Foreground(color)
	for i := 0; i < h; i++ {
		src := i - shift
		if progress <= 0 || src < 0 {
			continue
		}
		out[i] = style.Render(m.plain[src])
	}
	return out
}

func (p *transcriptPanel) View() string {
	return p.Viewport.View()
}
