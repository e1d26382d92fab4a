// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocab-deck/internal/dictionary"
	"github.com/pdiddy/vocab-deck/internal/fields"
	"github.com/pdiddy/vocab-deck/internal/render"
	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Resolve words against the dictionary",
	Long: `Lookup resolves each word the same way build does and prints the
matched headword, how it was matched, and the decoded entry.

With --direct and a SQLite dictionary, lookup queries the database for a
single headword instead of loading the full dictionary. Direct mode is
fast but cannot follow inflected forms.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	direct, _ := cmd.Flags().GetBool("direct")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	htmlOutput, _ := cmd.Flags().GetBool("html")

	var (
		entries []types.ResolvedEntry
		err     error
	)
	if direct {
		entries, err = lookupDirect(ctx, args)
	} else {
		entries, err = lookupSnapshot(ctx, args)
	}
	if err != nil {
		return err
	}

	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case htmlOutput:
		r := render.New(cfg.Render)
		for _, e := range entries {
			rec, err := r.Render(types.CapturedEntry{Word: e.QueryWord}, e)
			if err != nil {
				return err
			}
			fmt.Println(rec.Back)
		}
		return nil
	default:
		for i, e := range entries {
			if i > 0 {
				fmt.Println()
			}
			printEntry(os.Stdout, e, cfg.Render.MaxSenses)
		}
		return nil
	}
}

func lookupSnapshot(ctx context.Context, words []string) ([]types.ResolvedEntry, error) {
	snap, err := loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	res := resolve.New(snap, snap.Index())

	entries := make([]types.ResolvedEntry, len(words))
	for i, w := range words {
		entries[i] = res.Resolve(w)
	}
	return entries, nil
}

func lookupDirect(ctx context.Context, words []string) ([]types.ResolvedEntry, error) {
	if cfg.Dictionary.Format == types.DictionaryCSV {
		return nil, fmt.Errorf("--direct needs a SQLite dictionary")
	}
	store, err := dictionary.Open(cfg.Dictionary.Path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("lookups will scan the whole table", "error", err)
	}

	entries := make([]types.ResolvedEntry, len(words))
	for i, w := range words {
		e := types.ResolvedEntry{QueryWord: strings.TrimSpace(w), MatchKind: types.MatchNotFound}
		raw, ok, err := store.LookupHeadword(ctx, w)
		if err != nil {
			return nil, err
		}
		if ok {
			rec := fields.Decode(raw)
			e.Record = &rec
			e.MatchedHeadword = rec.Headword
			e.Via = e.QueryWord
			e.MatchKind = types.MatchStripped
			if resolve.Normalize(rec.Headword) == resolve.Normalize(w) {
				e.MatchKind = types.MatchExact
			}
		}
		entries[i] = e
	}
	return entries, nil
}

// printEntry writes a plain-text rendering of a resolved entry.
func printEntry(w io.Writer, e types.ResolvedEntry, maxSenses int) {
	if !e.Found() {
		fmt.Fprintf(w, "%s: %s\n", e.QueryWord, render.NotFoundMarker)
		return
	}
	rec := e.Record

	fmt.Fprintf(w, "%s → %s (%s)\n", e.QueryWord, rec.Headword, e.MatchKind)
	if rec.Phonetic != "" {
		fmt.Fprintf(w, "  [%s]\n", rec.Phonetic)
	}
	if len(rec.POS) > 0 {
		parts := make([]string, len(rec.POS))
		for i, p := range rec.POS {
			parts[i] = fmt.Sprintf("%s %d%%", fields.POSLabel(p.Tag), p.Percent)
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, ", "))
	}
	for _, senses := range [][]types.Sense{rec.Translations, rec.Definitions} {
		for i, s := range senses {
			if maxSenses > 0 && i >= maxSenses {
				break
			}
			fmt.Fprintf(w, "  %s\n", strings.TrimSpace(s.Prefix+" "+s.Text))
		}
	}
	if f := rec.Frequency; !f.IsEmpty() {
		var parts []string
		if f.Collins > 0 {
			parts = append(parts, "Collins "+strings.Repeat("★", f.Collins))
		}
		if f.Oxford {
			parts = append(parts, "Oxford 3000")
		}
		if f.BNC > 0 {
			parts = append(parts, fmt.Sprintf("BNC %d", f.BNC))
		}
		if f.FRQ > 0 {
			parts = append(parts, fmt.Sprintf("FRQ %d", f.FRQ))
		}
		for _, t := range f.Tags {
			parts = append(parts, fields.TagLabel(t))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, ", "))
	}
	for _, f := range rec.Morphology.Forms {
		fmt.Fprintf(w, "  %s: %s\n", fields.RelationLabel(f.Relation), f.Surface)
	}
	for _, line := range rec.Detail {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func init() {
	lookupCmd.Flags().Bool("direct", false, "query a SQLite dictionary directly without loading it")
	lookupCmd.Flags().Bool("json", false, "print entries as JSON")
	lookupCmd.Flags().Bool("html", false, "print the rendered card back")
	rootCmd.AddCommand(lookupCmd)
}
