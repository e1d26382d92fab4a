// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocab-deck/internal/deck"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [vocab.db]",
	Short: "Export full card data to YAML or JSON",
	Long: `Export runs the same pipeline as build but writes every card with its
capture, resolution and dictionary record, for inspection or for other
tools. The format follows the file extension (.json or .yaml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 1 {
		cfg.Capture.VocabDB = args[0]
	}
	out, _ := cmd.Flags().GetString("out")

	driver, err := newDriver(ctx)
	if err != nil {
		return err
	}
	src, err := openCaptures()
	if err != nil {
		return err
	}
	defer src.Close()

	seq, summary := driver.Cards(ctx, src.Captures(ctx))
	var cards []types.Card
	for card, err := range seq {
		if err != nil {
			return err
		}
		cards = append(cards, card)
	}

	if err := deck.Export(out, cards); err != nil {
		return err
	}
	fmt.Printf("exported %d cards to %s\n", len(cards), out)
	printSummary(summary)
	return nil
}

func init() {
	exportCmd.Flags().String("out", "cards.yaml", "output file (.yaml or .json)")
	rootCmd.AddCommand(exportCmd)
}
