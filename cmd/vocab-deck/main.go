// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vocab-deck CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/vocab-deck/internal/logging"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are populated before any subcommand runs.
var (
	cfg    types.Config
	logger *slog.Logger
)

// rootCmd is the base command for the vocab-deck CLI.
var rootCmd = &cobra.Command{
	Use:   "vocab-deck",
	Short: "Turn Kindle vocabulary lookups into Anki flashcards",
	Long: `vocab-deck reads the words you looked up on a Kindle (vocab.db), resolves
each one against the ECDICT dictionary, and writes an Anki-importable CSV
deck: the sentence you read on the front, the dictionary entry on the back.

Use build to write the deck, lookup to check a single word, and export to
dump the full card data as YAML or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c
		logger = logging.NewLogger(cfg.Log)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./vocab-deck.yaml or ~/.config/vocab-deck/vocab-deck.yaml)")

	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	pf.String("vocab-db", "", "path to the Kindle vocab.db")
	pf.String("language", "", "only use words captured in this language (e.g. en)")
	pf.Bool("oldest", false, "process the oldest lookups first")

	pf.String("dictionary", "", "path to the ECDICT stardict.db or stardict.csv")
	pf.String("dict-format", "", "dictionary format: sqlite or csv (default: from extension)")

	pf.Bool("inline-style", false, "embed a <style> block in every card back")
	pf.Int("max-senses", 0, "maximum translations and definitions per card (0 = all)")
	pf.Bool("show-book", false, "show the source book title on the card back")

	pf.Int("limit", 0, "maximum number of cards (0 = all)")
	pf.Int("workers", 1, "entries resolved and rendered concurrently")

	bindings := map[string]string{
		"log.level":           "log-level",
		"log.format":          "log-format",
		"capture.vocab_db":    "vocab-db",
		"capture.language":    "language",
		"capture.oldest":      "oldest",
		"dictionary.path":     "dictionary",
		"dictionary.format":   "dict-format",
		"render.inline_style": "inline-style",
		"render.max_senses":   "max-senses",
		"render.show_book":    "show-book",
		"pipeline.limit":      "limit",
		"pipeline.workers":    "workers",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("deck.header", string(types.HeaderAnki))
	viper.SetDefault("pipeline.workers", 1)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vocab-deck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vocab-deck"))
		}
	}

	viper.SetEnvPrefix("VOCAB_DECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
