// internal/db/store.go
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"showcase/internal/cards"
	"showcase/internal/config"
)

// Store is the deck library. It holds carousel input only; carousel
// state (the active card) is never written here.
type Store struct {
	db *sql.DB
}

type Deck struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	CardCount int
}

func Open() (*Store, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	return OpenPath(filepath.Join(dataDir, "decks.db"))
}

// OpenPath opens (or creates) a deck library at path
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		deck_id TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_cards_deck ON cards(deck_id, position);

	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		agent TEXT NOT NULL,
		body TEXT NOT NULL,
		is_system INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_messages_card ON messages(card_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDeck stores a validated deck under a new ID and returns the ID
func (s *Store) SaveDeck(name string, deck []cards.Card) (string, error) {
	if err := cards.Validate(deck); err != nil {
		return "", err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO decks (id, name) VALUES (?, ?)`, id, name); err != nil {
		return "", fmt.Errorf("insert deck: %w", err)
	}

	for i, c := range deck {
		res, err := tx.Exec(
			`INSERT INTO cards (deck_id, position, title, content) VALUES (?, ?, ?, ?)`,
			id, i, c.Title, c.Content,
		)
		if err != nil {
			return "", fmt.Errorf("insert card %d: %w", i, err)
		}
		cardID, err := res.LastInsertId()
		if err != nil {
			return "", err
		}
		for j, m := range c.Messages {
			_, err := tx.Exec(
				`INSERT INTO messages (card_id, position, agent, body, is_system) VALUES (?, ?, ?, ?, ?)`,
				cardID, j, m.Agent, m.Message, m.System,
			)
			if err != nil {
				return "", fmt.Errorf("insert message %d of card %d: %w", j, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetDeck retrieves deck metadata by ID
func (s *Store) GetDeck(id string) (*Deck, error) {
	row := s.db.QueryRow(
		`SELECT d.id, d.name, d.created_at, d.updated_at,
		        (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id)
		 FROM decks d WHERE d.id = ?`, id,
	)

	var d Deck
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt, &d.CardCount); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDecks returns all decks ordered by update time
func (s *Store) ListDecks() ([]Deck, error) {
	rows, err := s.db.Query(
		`SELECT d.id, d.name, d.created_at, d.updated_at,
		        (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id)
		 FROM decks d ORDER BY d.updated_at DESC, d.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt, &d.CardCount); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// LoadCards rebuilds the cards of a deck in their stored order
func (s *Store) LoadCards(deckID string) ([]cards.Card, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.title, c.content, m.agent, m.body, m.is_system
		 FROM cards c LEFT JOIN messages m ON m.card_id = c.id
		 WHERE c.deck_id = ?
		 ORDER BY c.position, m.position`,
		deckID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		deck   []cards.Card
		lastID int64 = -1
	)
	for rows.Next() {
		var (
			cardID         int64
			title, content string
			agent, body    sql.NullString
			isSystem       sql.NullBool
		)
		if err := rows.Scan(&cardID, &title, &content, &agent, &body, &isSystem); err != nil {
			return nil, err
		}
		if cardID != lastID {
			deck = append(deck, cards.Card{Title: title, Content: content})
			lastID = cardID
		}
		if agent.Valid {
			c := &deck[len(deck)-1]
			c.Messages = append(c.Messages, cards.Message{
				Agent:   agent.String,
				Message: body.String,
				System:  isSystem.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(deck) == 0 {
		return nil, fmt.Errorf("deck %s: %w", deckID, cards.ErrEmptyDeck)
	}
	return deck, nil
}

// RenameDeck updates the name of a deck. An unknown id returns sql.ErrNoRows.
func (s *Store) RenameDeck(id, name string) error {
	res, err := s.db.Exec(
		`UPDATE decks SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// DeleteDeck removes a deck with its cards and messages. An unknown id
// returns sql.ErrNoRows.
func (s *Store) DeleteDeck(id string) error {
	res, err := s.db.Exec(`DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("deck %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
