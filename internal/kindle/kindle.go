// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kindle reads captured words from a Kindle vocabulary database
// (vocab.db).
package kindle

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// Options filters and orders the captures.
type Options struct {
	// Language keeps only words captured in this language; empty keeps all.
	Language string

	// Oldest yields the oldest lookups first instead of the newest.
	Oldest bool
}

// Source streams captures out of a vocab.db file.
type Source struct {
	db   *sql.DB
	opts Options
}

// Open opens a Kindle vocab.db read-only.
func Open(path string, opts Options) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening vocab database %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening vocab database %s: %w", path, err)
	}

	for _, table := range []string{"WORDS", "LOOKUPS", "BOOK_INFO"} {
		var n int
		if err := db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&n); err != nil {
			db.Close()
			return nil, fmt.Errorf("reading vocab schema: %w", err)
		}
		if n == 0 {
			db.Close()
			return nil, fmt.Errorf("%s is not a Kindle vocab database: missing %s table", path, table)
		}
	}

	return &Source{db: db, opts: opts}, nil
}

// Close releases the database connection.
func (s *Source) Close() error {
	return s.db.Close()
}

// query picks, per word, the earliest non-empty usage and the title of
// the book of its earliest lookup.
const query = `
SELECT
	COALESCE(w.word, ''),
	COALESCE(w.stem, ''),
	COALESCE(w.lang, ''),
	COALESCE((
		SELECT l.usage FROM LOOKUPS l
		WHERE l.word_key = w.id AND TRIM(COALESCE(l.usage, '')) <> ''
		ORDER BY l.timestamp, l.id LIMIT 1
	), ''),
	COALESCE((
		SELECT b.title FROM LOOKUPS l JOIN BOOK_INFO b ON b.id = l.book_key
		WHERE l.word_key = w.id
		ORDER BY l.timestamp, l.id LIMIT 1
	), '')
FROM WORDS w`

func (s *Source) statement() (string, []any) {
	q := query
	var args []any
	if s.opts.Language != "" {
		q += "\nWHERE LOWER(w.lang) = LOWER(?)"
		args = append(args, s.opts.Language)
	}
	if s.opts.Oldest {
		q += "\nORDER BY w.timestamp ASC, w.id ASC"
	} else {
		q += "\nORDER BY w.timestamp DESC, w.id ASC"
	}
	return q, args
}

// Captures streams one entry per distinct word (case-insensitive). Rows
// are read lazily, so stopping early leaves the rest unread.
func (s *Source) Captures(ctx context.Context) iter.Seq2[types.CapturedEntry, error] {
	return func(yield func(types.CapturedEntry, error) bool) {
		q, args := s.statement()
		rows, err := s.db.QueryContext(ctx, q, args...)
		if err != nil {
			yield(types.CapturedEntry{}, fmt.Errorf("querying vocab database: %w", err))
			return
		}
		defer rows.Close()

		seen := make(map[string]bool)
		for rows.Next() {
			var c types.CapturedEntry
			if err := rows.Scan(&c.Word, &c.Stem, &c.Language, &c.Sentence, &c.Book); err != nil {
				yield(types.CapturedEntry{}, fmt.Errorf("scanning vocab row: %w", err))
				return
			}
			c.Word = StripLanguage(c.Word)
			c.Stem = StripLanguage(c.Stem)
			c.Sentence = strings.TrimSpace(c.Sentence)
			c.Book = strings.TrimSpace(c.Book)

			key := strings.ToLower(c.Word)
			if key != "" {
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			if !yield(c, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(types.CapturedEntry{}, fmt.Errorf("iterating vocab rows: %w", err))
		}
	}
}

// StripLanguage removes a leading "lang:" qualifier such as "en:" and
// trims the result.
func StripLanguage(word string) string {
	if _, after, ok := strings.Cut(word, ":"); ok {
		word = after
	}
	return strings.TrimSpace(word)
}
