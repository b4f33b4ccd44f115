// Package commands handles slash command parsing for the showcase prompt.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// Command interface for all command types
type Command interface {
	Type() string
}

// Help returns help text
type Help struct{}

func (Help) Type() string { return "help" }

// Next shows the next card
type Next struct{}

func (Next) Type() string { return "next" }

// Prev shows the previous card
type Prev struct{}

func (Prev) Type() string { return "prev" }

// GoTo activates a card by its zero-based index.
// The upper bound is checked by the carousel, which knows the deck size.
type GoTo struct {
	Index int
}

func (GoTo) Type() string { return "goto" }

// ShowDecks opens the stored deck picker
type ShowDecks struct{}

func (ShowDecks) Type() string { return "decks" }

// Export writes the mounted deck to markdown
type Export struct{}

func (Export) Type() string { return "export" }

// Booking scrolls to the demo booking section
type Booking struct{}

func (Booking) Type() string { return "booking" }

// ParseError represents a command parsing error
type ParseError struct {
	Message string
}

func (ParseError) Type() string { return "error" }

// Parse parses user input and returns the appropriate Command.
// Returns nil if the input is not a slash command.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help":
		return Help{}

	case "/next":
		return Next{}

	case "/prev":
		return Prev{}

	case "/goto":
		if len(args) == 0 {
			return ParseError{Message: "/goto requires a card number"}
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return ParseError{Message: "/goto: not a card number: " + args[0]}
		}
		if n < 1 {
			return ParseError{Message: "/goto: card numbers start at 1"}
		}
		return GoTo{Index: n - 1}

	case "/decks":
		return ShowDecks{}

	case "/export":
		return Export{}

	case "/booking", "/demo":
		return Booking{}

	default:
		return ParseError{Message: "unknown command: " + cmd}
	}
}

// Usage describes one prompt command for help screens
type Usage struct {
	Syntax  string
	Aliases []string
	Desc    string
}

// Usages lists every command Parse accepts, in help order
func Usages() []Usage {
	return []Usage{
		{Syntax: "/next", Desc: "Show the next card"},
		{Syntax: "/prev", Desc: "Show the previous card"},
		{Syntax: "/goto <n>", Desc: "Show card n"},
		{Syntax: "/decks", Desc: "Pick a stored deck"},
		{Syntax: "/export", Desc: "Export the deck to markdown"},
		{Syntax: "/booking", Aliases: []string{"/demo"}, Desc: "Jump to the demo booking section"},
		{Syntax: "/help", Desc: "Show this help"},
	}
}

// HelpText returns the help text for all available commands.
func HelpText() string {
	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, u := range Usages() {
		sb.WriteString(fmt.Sprintf("\n  %-10s - %s", u.Syntax, u.Desc))
		if len(u.Aliases) > 0 {
			sb.WriteString(" (also " + strings.Join(u.Aliases, ", ") + ")")
		}
	}
	return sb.String()
}
