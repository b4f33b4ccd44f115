package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/internal/cards"
	"showcase/internal/config"
	"showcase/internal/db"
	"showcase/internal/logging"
	"showcase/internal/ui"
)

var (
	// Global flags
	verbose  bool
	deckFile string
	storedID string
	dbPath   string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the carousel TUI
var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Terminal showcase of agent transcripts",
	Long: `showcase renders a deck of agent conversation transcripts as an
animated card carousel.

Run without arguments to open the built-in demo deck. Use --deck to show a
YAML deck file or --stored to show a deck from the library.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runShowcase,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Deck library path (default: data dir)")
	rootCmd.PersistentFlags().StringVar(&deckFile, "deck", "", "YAML deck file to show")
	rootCmd.PersistentFlags().StringVar(&storedID, "stored", "", "Library deck ID to show")

	importCmd.Flags().String("name", "", "Deck name (default: file name)")
	exportCmd.Flags().String("out", "", "Output directory (default: data dir)")

	decksCmd.AddCommand(decksRenameCmd)
	decksCmd.AddCommand(decksRemoveCmd)

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(bookingURLCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore() (*db.Store, error) {
	if dbPath != "" {
		return db.OpenPath(dbPath)
	}
	return db.Open()
}

// resolveDeck picks the deck to show: --stored, then --deck, then the
// config's deck file. A nil deck means the built-in one.
func resolveDeck(store *db.Store) ([]cards.Card, string, error) {
	switch {
	case storedID != "":
		if store == nil {
			return nil, "", fmt.Errorf("deck library not available")
		}
		d, err := store.GetDeck(storedID)
		if err != nil {
			return nil, "", err
		}
		deck, err := store.LoadCards(storedID)
		if err != nil {
			return nil, "", err
		}
		return deck, d.Name, nil

	case deckFile != "":
		deck, err := cards.LoadFile(deckFile)
		return deck, deckName(deckFile), err

	case cfg != nil && cfg.Deck != "":
		deck, err := cards.LoadFile(cfg.Deck)
		return deck, deckName(cfg.Deck), err
	}
	return nil, "Built-in demo", nil
}

func runShowcase(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		// The library is optional for the TUI
		logger.Warn("deck library unavailable", zap.Error(err))
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deck, name, err := resolveDeck(store)
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}

	m, err := ui.New(ui.Options{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Deck:     deck,
		DeckName: name,
	})
	if err != nil {
		return err
	}

	logger.Info("starting showcase", zap.String("deck", name))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	unmountFinal(m, final)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// unmountFinal releases the carousel however the program ended. A deck
// switch replaces the carousel, so prefer the final model's.
func unmountFinal(initial ui.Model, final tea.Model) {
	if fm, ok := final.(ui.Model); ok {
		fm.Carousel().Unmount()
		return
	}
	initial.Carousel().Unmount()
}
