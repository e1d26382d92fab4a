// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vocab-deck/internal/deck"
	"github.com/pdiddy/vocab-deck/internal/dictionary"
	"github.com/pdiddy/vocab-deck/internal/kindle"
	"github.com/pdiddy/vocab-deck/internal/pipeline"
	"github.com/pdiddy/vocab-deck/internal/render"
	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [vocab.db]",
	Short: "Build an Anki CSV deck from a Kindle vocab.db",
	Long: `Build reads every word looked up on the Kindle, resolves it against the
ECDICT dictionary (directly, through its inflected forms, or through the
Kindle stem) and writes one card per word to a CSV file Anki can import.

Words with no dictionary entry still get a card, marked as such. The deck
is written to a temporary file and moved into place when complete.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 1 {
		cfg.Capture.VocabDB = args[0]
	}

	driver, err := newDriver(ctx)
	if err != nil {
		return err
	}
	src, err := openCaptures()
	if err != nil {
		return err
	}
	defer src.Close()

	records, summary := driver.Run(ctx, src.Captures(ctx))

	out := outputPath(cfg)
	n, err := deck.NewWriter(cfg.Deck).WriteFile(ctx, out, records)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d cards to %s\n", n, out)
	printSummary(summary)
	return nil
}

// --- shared helpers ---

// newDriver loads the dictionary snapshot and wires the resolver and
// renderer into a pipeline driver.
func newDriver(ctx context.Context) (*pipeline.Driver, error) {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	res := resolve.New(snap, snap.Index())
	opts := pipeline.Options{Limit: cfg.Pipeline.Limit, Workers: cfg.Pipeline.Workers}
	return pipeline.New(res, render.New(cfg.Render), logger, opts), nil
}

func loadSnapshot(ctx context.Context) (*dictionary.Snapshot, error) {
	src, err := dictionary.OpenSource(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	logger.Info("loading dictionary", "path", cfg.Dictionary.Path)
	snap, _, err := dictionary.Load(ctx, src, logger)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func openCaptures() (*kindle.Source, error) {
	if cfg.Capture.VocabDB == "" {
		return nil, fmt.Errorf("vocab database required: pass it as an argument or set --vocab-db")
	}
	return kindle.Open(cfg.Capture.VocabDB, kindle.Options{
		Language: cfg.Capture.Language,
		Oldest:   cfg.Capture.Oldest,
	})
}

// outputPath returns the configured deck path, or "<vocab db name>_deck.csv"
// in the working directory.
func outputPath(c types.Config) string {
	if c.Deck.Output != "" {
		return c.Deck.Output
	}
	base := filepath.Base(c.Capture.VocabDB)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_deck.csv"
}

func printSummary(s *pipeline.Summary) {
	fmt.Printf("exact: %d, stripped: %d, inflected: %d, stem: %d, not found: %d, skipped: %d, failed: %d\n",
		s.ByKind[types.MatchExact], s.ByKind[types.MatchStripped], s.ByKind[types.MatchInflected],
		s.ByKind[types.MatchStem], s.ByKind[types.MatchNotFound], s.Skipped, s.Failed)
}

func init() {
	f := buildCmd.Flags()
	f.StringP("output", "o", "", "output CSV path (default: <vocab db name>_deck.csv)")
	f.String("header", string(types.HeaderAnki), "header mode: anki, names, none")
	f.Bool("guid", false, "add a deterministic GUID column so re-imports update existing notes")
	f.String("deck-name", "", "Anki deck to import into (anki header only)")
	f.String("note-type", "", "Anki note type to import as (anki header only)")

	for key, flag := range map[string]string{
		"deck.output":    "output",
		"deck.header":    "header",
		"deck.guid":      "guid",
		"deck.deck_name": "deck-name",
		"deck.note_type": "note-type",
	} {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(buildCmd)
}
