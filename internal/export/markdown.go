// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"showcase/internal/agents"
	"showcase/internal/cards"
)

// DeckExport contains the data needed to export a deck
type DeckExport struct {
	Name       string
	ExportedAt time.Time
	Cards      []cards.Card
}

// ExportDeck generates a formatted markdown string from a deck
func ExportDeck(deck *DeckExport) string {
	var sb strings.Builder

	// Title header
	sb.WriteString("# ")
	sb.WriteString(deck.Name)
	sb.WriteString("\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Cards:** %d\n\n", len(deck.Cards)))
	sb.WriteString("---\n\n")

	for i, card := range deck.Cards {
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, card.Title))
		if card.Content != "" {
			sb.WriteString("*")
			sb.WriteString(strings.TrimSpace(card.Content))
			sb.WriteString("*\n\n")
		}

		if participants := participants(card.Messages); len(participants) > 0 {
			sb.WriteString("**Agents:** ")
			sb.WriteString(strings.Join(participants, ", "))
			sb.WriteString("\n\n")
		}

		for _, msg := range card.Messages {
			sb.WriteString("### ")
			sb.WriteString(formatAgent(msg))
			sb.WriteString("\n\n")

			content := strings.TrimSpace(msg.Message)
			if containsCodeBlock(content) {
				// Content already has code blocks, render as-is
				sb.WriteString(content)
				sb.WriteString("\n")
			} else {
				// Wrap in blockquote for visual distinction
				for _, line := range strings.Split(content, "\n") {
					sb.WriteString("> ")
					sb.WriteString(line)
					sb.WriteString("\n")
				}
			}
			sb.WriteString("\n")
		}

		// Add horizontal rule between cards (except after last)
		if i < len(deck.Cards)-1 {
			sb.WriteString("---\n\n")
		}
	}

	// Footer
	at := deck.ExportedAt
	if at.IsZero() {
		at = time.Now()
	}
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from showcase on %s*\n", at.Format("2006-01-02 15:04:05")))

	return sb.String()
}

// WriteDeck exports a deck to a markdown file in the transcripts directory
func WriteDeck(deck *DeckExport, baseDir string) (string, error) {
	filename := sanitizeFilename(deck.Name) + ".md"

	// Ensure transcripts directory exists
	dir := filepath.Join(baseDir, "transcripts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create transcripts directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(ExportDeck(deck)), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

// formatAgent returns the heading for a message, with its icon when known
func formatAgent(msg cards.Message) string {
	name := agents.DisplayName(msg.Agent)
	if icon, ok := agents.IconFor(msg.Agent); ok {
		name = icon + " " + name
	}
	if msg.System {
		name += " (system)"
	}
	return name
}

// participants lists display names in order of first appearance
func participants(msgs []cards.Message) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range msgs {
		if seen[m.Agent] {
			continue
		}
		seen[m.Agent] = true
		out = append(out, agents.DisplayName(m.Agent))
	}
	return out
}

// sanitizeFilename removes/replaces characters unsuitable for filenames
func sanitizeFilename(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '-' || r == '_':
			sb.WriteRune(r)
		}
	}

	result := sb.String()

	// Collapse multiple hyphens
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	result = strings.Trim(result, "-")

	if result == "" {
		result = "deck"
	}
	if len(result) > 50 {
		result = result[:50]
	}

	return result
}

// containsCodeBlock checks if content already has markdown code blocks
func containsCodeBlock(content string) bool {
	return strings.Contains(content, "```")
}
