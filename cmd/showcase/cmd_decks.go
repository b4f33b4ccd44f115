// Package main implements the deck library, export and booking commands.
package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showcase/internal/booking"
	"showcase/internal/cards"
	"showcase/internal/config"
	"showcase/internal/export"
)

// importCmd stores a YAML deck in the library
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add a YAML deck file to the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

// decksCmd lists the library
var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List stored decks",
	Long: `List and manage stored decks.

Subcommands:
  rename  - Rename a stored deck
  rm      - Delete a stored deck`,
	Args: cobra.NoArgs,
	RunE: runDecksList,
}

var decksRenameCmd = &cobra.Command{
	Use:   "rename <deck-id> <name>",
	Short: "Rename a stored deck",
	Args:  cobra.ExactArgs(2),
	RunE:  runDecksRename,
}

var decksRemoveCmd = &cobra.Command{
	Use:   "rm <deck-id>",
	Short: "Delete a stored deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecksRemove,
}

// exportCmd writes a deck as markdown
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a deck's transcripts as markdown",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

// bookingURLCmd prints the scheduling widget URL
var bookingURLCmd = &cobra.Command{
	Use:   "booking-url",
	Short: "Print the demo booking URL with page settings",
	Args:  cobra.NoArgs,
	RunE:  runBookingURL,
}

// deckName derives a deck name from its file path
func deckName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runImport(cmd *cobra.Command, args []string) error {
	deck, err := cards.LoadFile(args[0])
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = deckName(args[0])
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open deck library: %w", err)
	}
	defer store.Close()

	id, err := store.SaveDeck(name, deck)
	if err != nil {
		return err
	}
	logger.Info("deck imported", zap.String("id", id), zap.String("name", name), zap.Int("cards", len(deck)))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %q (%d cards) as %s\n", name, len(deck), id)
	return nil
}

func runDecksList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open deck library: %w", err)
	}
	defer store.Close()

	decks, err := store.ListDecks()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(decks) == 0 {
		fmt.Fprintln(out, "No stored decks.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCARDS\tUPDATED")
	for _, d := range decks {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.ID, d.Name, d.CardCount, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runDecksRename(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open deck library: %w", err)
	}
	defer store.Close()

	if err := store.RenameDeck(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
	return nil
}

func runDecksRemove(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open deck library: %w", err)
	}
	defer store.Close()

	if err := store.DeleteDeck(args[0]); err != nil {
		return err
	}
	logger.Info("deck deleted", zap.String("id", args[0]))
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		if storedID != "" {
			return fmt.Errorf("failed to open deck library: %w", err)
		}
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	deck, name, err := resolveDeck(store)
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}
	if deck == nil {
		deck = cards.Default()
	}

	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir, err = config.DataDir()
		if err != nil {
			return err
		}
	}

	path, err := export.WriteDeck(&export.DeckExport{
		Name:       name,
		ExportedAt: time.Now(),
		Cards:      deck,
	}, dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runBookingURL(cmd *cobra.Command, args []string) error {
	c := cfg
	if c == nil {
		c = config.Default()
	}
	u, err := booking.FromConfig(c.Booking).EmbedURL()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), u)
	return nil
}
