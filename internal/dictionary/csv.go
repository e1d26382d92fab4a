// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// CSVSource reads the ECDICT CSV distribution. Columns are located by
// the header row, so extra or reordered columns are fine.
type CSVSource struct {
	path string
}

// NewCSVSource returns a source for the CSV file at path.
func NewCSVSource(path string) (*CSVSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	return &CSVSource{path: path}, nil
}

// Close is a no-op; the file is opened per Records call.
func (s *CSVSource) Close() error { return nil }

// Records streams every data row of the file.
func (s *CSVSource) Records(ctx context.Context) iter.Seq2[types.RawRecord, error] {
	return func(yield func(types.RawRecord, error) bool) {
		f, err := os.Open(s.path)
		if err != nil {
			yield(types.RawRecord{}, fmt.Errorf("opening dictionary %s: %w", s.path, err))
			return
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		header, err := r.Read()
		if err != nil {
			yield(types.RawRecord{}, fmt.Errorf("reading dictionary header: %w", err))
			return
		}
		pos := headerPositions(header)
		if _, ok := pos["word"]; !ok {
			yield(types.RawRecord{}, fmt.Errorf("dictionary %s has no word column", s.path))
			return
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(types.RawRecord{}, err)
				return
			}
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var perr *csv.ParseError
				if errors.As(err, &perr) {
					if !yield(types.RawRecord{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)) {
						return
					}
					continue
				}
				yield(types.RawRecord{}, fmt.Errorf("reading dictionary: %w", err))
				return
			}
			if !yield(rawFromRow(row, pos), nil) {
				return
			}
		}
	}
}

func headerPositions(header []string) map[string]int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	return pos
}

func rawFromRow(row []string, pos map[string]int) types.RawRecord {
	get := func(name string) string {
		if i, ok := pos[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}
	return types.RawRecord{
		Word:        get("word"),
		Phonetic:    get("phonetic"),
		Definition:  get("definition"),
		Translation: get("translation"),
		POS:         get("pos"),
		Collins:     get("collins"),
		Oxford:      get("oxford"),
		Tag:         get("tag"),
		BNC:         get("bnc"),
		FRQ:         get("frq"),
		Exchange:    get("exchange"),
		Detail:      get("detail"),
	}
}
