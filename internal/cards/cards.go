// internal/cards/cards.go
package cards

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDeck is returned when a deck has no cards
var ErrEmptyDeck = errors.New("deck has no cards")

// Message is a single line of a canned agent transcript
type Message struct {
	Agent   string `yaml:"agent"`   // security_teacher, attack_analysis_agent, ...
	Message string `yaml:"message"` // free-form, may contain markdown
	System  bool   `yaml:"system,omitempty"`
}

// UnmarshalYAML accepts the system flag as either `system` or `isSystem`
func (m *Message) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Agent    string `yaml:"agent"`
		Message  string `yaml:"message"`
		System   bool   `yaml:"system"`
		IsSystem bool   `yaml:"isSystem"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*m = Message{Agent: raw.Agent, Message: raw.Message, System: raw.System || raw.IsSystem}
	return nil
}

// Card is one carousel entry. Identity is its index in the deck.
type Card struct {
	Title    string    `yaml:"title"`
	Content  string    `yaml:"content"`
	Messages []Message `yaml:"messages"`
}

//go:embed default.yaml
var defaultDeck []byte

// Default returns the built-in three-card deck
func Default() []Card {
	deck, err := Parse(defaultDeck)
	if err != nil {
		// embedded at build time; a parse failure is a build defect
		panic(fmt.Sprintf("default deck: %v", err))
	}
	return deck
}

// Parse decodes a YAML deck and validates it
func Parse(data []byte) ([]Card, error) {
	var deck []Card
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if err := Validate(deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// MaxFileSize is the largest deck file LoadFile accepts (1MB)
const MaxFileSize = 1024 * 1024

// LoadFile reads a deck from a YAML file
func LoadFile(path string) ([]Card, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read deck: %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("read deck: file too large (%d bytes, max %d)", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return Parse(data)
}

// Validate checks the deck can back a carousel
func Validate(deck []Card) error {
	if len(deck) == 0 {
		return ErrEmptyDeck
	}
	for i, c := range deck {
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("card %d: missing title", i+1)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a mounted deck
func Clone(deck []Card) []Card {
	out := make([]Card, len(deck))
	for i, c := range deck {
		out[i] = Card{
			Title:    c.Title,
			Content:  c.Content,
			Messages: append([]Message(nil), c.Messages...),
		}
	}
	return out
}
