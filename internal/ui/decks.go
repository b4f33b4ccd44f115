// internal/ui/decks.go
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"showcase/internal/db"
)

// ViewMode represents the current view state
type ViewMode int

const (
	ViewNormal ViewMode = iota
	ViewHelp
	ViewDecks
)

var errNoStore = errors.New("deck library not available")

// builtinDeckID marks the embedded default deck in the picker
const builtinDeckID = ""

// DeckPicker holds the state for the deck library browser
type DeckPicker struct {
	decks     []db.Deck
	cursor    int
	scrollTop int
	maxHeight int
}

// NewDeckPicker creates an empty picker
func NewDeckPicker() *DeckPicker {
	return &DeckPicker{maxHeight: 20}
}

// Up moves the cursor up
func (p *DeckPicker) Up() {
	if p.cursor > 0 {
		p.cursor--
		if p.cursor < p.scrollTop {
			p.scrollTop = p.cursor
		}
	}
}

// Down moves the cursor down
func (p *DeckPicker) Down() {
	if p.cursor < len(p.decks)-1 {
		p.cursor++
		if p.cursor >= p.scrollTop+p.maxHeight {
			p.scrollTop = p.cursor - p.maxHeight + 1
		}
	}
}

// Selected returns the deck under the cursor, or nil if none
func (p *DeckPicker) Selected() *db.Deck {
	if p.cursor >= 0 && p.cursor < len(p.decks) {
		return &p.decks[p.cursor]
	}
	return nil
}

// Load lists stored decks. The built-in deck is always the first entry.
func (p *DeckPicker) Load(store *db.Store, builtinCards int) error {
	builtin := db.Deck{ID: builtinDeckID, Name: "Built-in demo", CardCount: builtinCards}
	p.decks = []db.Deck{builtin}
	p.cursor = 0
	p.scrollTop = 0
	if store == nil {
		return errNoStore
	}
	decks, err := store.ListDecks()
	if err != nil {
		return fmt.Errorf("list decks: %w", err)
	}
	p.decks = append(p.decks, decks...)
	return nil
}

// SetMaxHeight updates the max visible rows
func (p *DeckPicker) SetMaxHeight(height int) {
	p.maxHeight = max(height-10, 5)
}

// Render draws the picker overlay
func (p *DeckPicker) Render(width, height int) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render("DECK LIBRARY"))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render("Select a transcript deck to show"))
	content.WriteString("\n\n")

	visibleEnd := min(p.scrollTop+p.maxHeight, len(p.decks))

	header := fmt.Sprintf("  %-8s  %-24s  %-5s  %s", "ID", "Name", "Cards", "Updated")
	content.WriteString(DimStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(DimStyle.Render(strings.Repeat("-", 60)))
	content.WriteString("\n")

	for i := p.scrollTop; i < visibleEnd; i++ {
		d := p.decks[i]

		id := "builtin"
		if d.ID != builtinDeckID {
			id = d.ID[:min(8, len(d.ID))]
		}

		timeStr := "-"
		if !d.UpdatedAt.IsZero() {
			timeStr = d.UpdatedAt.Format("2006-01-02 15:04")
			if time.Since(d.UpdatedAt) < 24*time.Hour {
				timeStr = d.UpdatedAt.Format("Today 15:04")
			}
		}

		cursor := "  "
		lineStyle := DimStyle
		if i == p.cursor {
			cursor = "> "
			lineStyle = lipgloss.NewStyle().Foreground(Accent)
		}

		line := fmt.Sprintf("%-8s  %-24s  %-5d  %s",
			id, ansi.Truncate(d.Name, 24, ".."), d.CardCount, timeStr)
		content.WriteString(cursor)
		content.WriteString(lineStyle.Render(line))
		content.WriteString("\n")
	}

	if len(p.decks) == 1 {
		content.WriteString("\n")
		content.WriteString(DimStyle.Render("No stored decks. Add one with: showcase import <file.yaml>"))
		content.WriteString("\n")
	}

	if len(p.decks) > p.maxHeight {
		content.WriteString("\n")
		content.WriteString(DimStyle.Render(fmt.Sprintf("Showing %d-%d of %d",
			p.scrollTop+1, visibleEnd, len(p.decks))))
	}

	content.WriteString("\n\n")
	content.WriteString(DimStyle.Render("Up/Down: Navigate | Enter: Show | Esc: Cancel"))

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		MaxWidth(width - 10).
		MaxHeight(height - 4)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		overlayStyle.Render(content.String()))
}
