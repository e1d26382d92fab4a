// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck writes rendered cards as an Anki-importable CSV file and
// exports full card bundles as YAML or JSON.
package deck

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// guidNamespace scopes note GUIDs so the same word always maps to the
// same note across runs.
var guidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pdiddy/vocab-deck"))

// GUID returns the deterministic note GUID for a record key.
func GUID(key string) string {
	return uuid.NewSHA1(guidNamespace, []byte(key)).String()
}

// Writer serializes output records as CSV.
type Writer struct {
	Header   types.HeaderMode
	GUID     bool
	DeckName string
	NoteType string
}

// NewWriter returns a writer configured from cfg. An empty header mode
// means HeaderAnki.
func NewWriter(cfg types.DeckConfig) *Writer {
	h := cfg.Header
	if h == "" {
		h = types.HeaderAnki
	}
	return &Writer{Header: h, GUID: cfg.GUID, DeckName: cfg.DeckName, NoteType: cfg.NoteType}
}

func (w *Writer) columns() []string {
	cols := []string{"Front", "Back"}
	if w.GUID {
		cols = append(cols, "GUID")
	}
	return cols
}

func (w *Writer) writeHeader(out io.Writer, cw *csv.Writer) error {
	switch w.Header {
	case types.HeaderAnki:
		lines := []string{
			"#separator:comma",
			"#html:true",
			"#columns:" + strings.Join(w.columns(), ","),
		}
		if w.GUID {
			lines = append(lines, "#guid column:3")
		}
		if w.DeckName != "" {
			lines = append(lines, "#deck:"+w.DeckName)
		}
		if w.NoteType != "" {
			lines = append(lines, "#notetype:"+w.NoteType)
		}
		for _, l := range lines {
			if _, err := fmt.Fprintln(out, l); err != nil {
				return fmt.Errorf("writing deck header: %w", err)
			}
		}
		return nil
	case types.HeaderNames:
		if err := cw.Write(w.columns()); err != nil {
			return fmt.Errorf("writing deck header: %w", err)
		}
		return nil
	case types.HeaderNone:
		return nil
	default:
		return fmt.Errorf("unknown header mode %q", w.Header)
	}
}

// Write streams records to out and returns how many were written. The
// first error from the sequence aborts the write.
func (w *Writer) Write(ctx context.Context, out io.Writer, records iter.Seq2[types.OutputRecord, error]) (int, error) {
	bw := bufio.NewWriter(out)
	cw := csv.NewWriter(bw)

	if err := w.writeHeader(bw, cw); err != nil {
		return 0, err
	}

	n := 0
	for rec, err := range records {
		if err != nil {
			return n, err
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		row := []string{rec.Front, rec.Back}
		if w.GUID {
			row = append(row, GUID(rec.Key))
		}
		if err := cw.Write(row); err != nil {
			return n, fmt.Errorf("writing record %q: %w", rec.Key, err)
		}
		n++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("flushing deck: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flushing deck: %w", err)
	}
	return n, nil
}

// WriteFile writes the deck to path through a temporary file in the
// same directory, so a failed run never leaves a partial deck behind.
func (w *Writer) WriteFile(ctx context.Context, path string, records iter.Seq2[types.OutputRecord, error]) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := w.Write(ctx, tmp, records)
	if err != nil {
		tmp.Close()
		return n, err
	}
	// CreateTemp makes the file owner-only; decks get the usual 0644.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return n, fmt.Errorf("setting deck permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return n, fmt.Errorf("renaming deck into place: %w", err)
	}
	return n, nil
}
