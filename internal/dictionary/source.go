// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dictionary reads ECDICT dictionary data from SQLite or CSV and
// builds the read-only snapshot the resolver queries.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// ErrMalformedRow marks a single unreadable row. Loaders skip and count
// such rows instead of aborting.
var ErrMalformedRow = errors.New("malformed dictionary row")

// Source streams raw dictionary rows.
type Source interface {
	Records(ctx context.Context) iter.Seq2[types.RawRecord, error]
	Close() error
}

// columns is the ECDICT column order shared by the SQLite and CSV layouts.
var columns = []string{
	"word", "phonetic", "definition", "translation", "pos",
	"collins", "oxford", "tag", "bnc", "frq", "exchange", "detail",
}

// OpenSource opens the dictionary described by cfg. An empty format is
// inferred from the file extension.
func OpenSource(cfg types.DictionaryConfig) (Source, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("dictionary path is required")
	}
	format := cfg.Format
	if format == types.DictionaryAuto {
		switch strings.ToLower(filepath.Ext(cfg.Path)) {
		case ".db", ".sqlite", ".sqlite3":
			format = types.DictionarySQLite
		case ".csv":
			format = types.DictionaryCSV
		default:
			return nil, fmt.Errorf("cannot infer dictionary format from %s; set dictionary.format", cfg.Path)
		}
	}

	switch format {
	case types.DictionarySQLite:
		return Open(cfg.Path)
	case types.DictionaryCSV:
		return NewCSVSource(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported dictionary format %q", format)
	}
}
