// internal/db/store_test.go
package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"showcase/internal/cards"
)

func TestStore(t *testing.T) {
	// Use temp dir for test
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	deck := []cards.Card{
		{
			Title:   "SQL Injection",
			Content: "Finds SQLi",
			Messages: []cards.Message{
				{Agent: "attack_analysis_agent", Message: "plan"},
				{Agent: "security_teacher", Message: "lesson", System: true},
			},
		},
		{Title: "Empty transcript", Content: "no messages"},
		{
			Title:    "SSRF",
			Messages: []cards.Message{{Agent: "unknown_role_x", Message: "hi"}},
		},
	}

	// Test save deck
	id, err := store.SaveDeck("PortSwigger", deck)
	if err != nil {
		t.Fatalf("SaveDeck() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected non-empty deck ID")
	}

	// Test get deck
	d, err := store.GetDeck(id)
	if err != nil {
		t.Fatalf("GetDeck() failed: %v", err)
	}
	if d.Name != "PortSwigger" {
		t.Errorf("Expected name 'PortSwigger', got %s", d.Name)
	}
	if d.CardCount != 3 {
		t.Errorf("Expected 3 cards, got %d", d.CardCount)
	}

	// Test load cards keeps order and content
	loaded, err := store.LoadCards(id)
	if err != nil {
		t.Fatalf("LoadCards() failed: %v", err)
	}
	if diff := cmp.Diff(deck, loaded); diff != "" {
		t.Errorf("LoadCards() mismatch (-want +got):\n%s", diff)
	}

	// Test list decks
	if _, err := store.SaveDeck("Second", deck[:1]); err != nil {
		t.Fatalf("SaveDeck() second failed: %v", err)
	}
	decks, err := store.ListDecks()
	if err != nil {
		t.Fatalf("ListDecks() failed: %v", err)
	}
	if len(decks) != 2 {
		t.Errorf("Expected 2 decks, got %d", len(decks))
	}

	// Test rename deck
	if err := store.RenameDeck(id, "Renamed"); err != nil {
		t.Fatalf("RenameDeck() failed: %v", err)
	}
	d, err = store.GetDeck(id)
	if err != nil {
		t.Fatalf("GetDeck() after rename failed: %v", err)
	}
	if d.Name != "Renamed" {
		t.Errorf("Expected name 'Renamed', got %s", d.Name)
	}

	// Test delete deck
	if err := store.DeleteDeck(id); err != nil {
		t.Fatalf("DeleteDeck() failed: %v", err)
	}
	if _, err := store.GetDeck(id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows after delete, got %v", err)
	}
	if _, err := store.LoadCards(id); !errors.Is(err, cards.ErrEmptyDeck) {
		t.Errorf("Expected ErrEmptyDeck for deleted deck, got %v", err)
	}

	// Unknown ids are reported, not silently accepted
	if err := store.DeleteDeck(id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows deleting a missing deck, got %v", err)
	}
	if err := store.RenameDeck("no-such-deck", "x"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows renaming a missing deck, got %v", err)
	}
}

func TestSaveDeck_Empty(t *testing.T) {
	store, err := OpenPath(filepath.Join(t.TempDir(), "decks.db"))
	if err != nil {
		t.Fatalf("OpenPath() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveDeck("nothing", nil); !errors.Is(err, cards.ErrEmptyDeck) {
		t.Errorf("SaveDeck(nil) error = %v, want ErrEmptyDeck", err)
	}
	decks, err := store.ListDecks()
	if err != nil {
		t.Fatalf("ListDecks() failed: %v", err)
	}
	if len(decks) != 0 {
		t.Errorf("Expected no decks, got %d", len(decks))
	}
}

func TestSaveDeck_DefaultDeck(t *testing.T) {
	store, err := OpenPath(filepath.Join(t.TempDir(), "decks.db"))
	if err != nil {
		t.Fatalf("OpenPath() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveDeck("default", cards.Default())
	if err != nil {
		t.Fatalf("SaveDeck() failed: %v", err)
	}
	loaded, err := store.LoadCards(id)
	if err != nil {
		t.Fatalf("LoadCards() failed: %v", err)
	}
	if diff := cmp.Diff(cards.Default(), loaded); diff != "" {
		t.Errorf("default deck changed on round trip (-want +got):\n%s", diff)
	}
}
