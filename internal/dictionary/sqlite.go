// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

const table = "stardict"

// SQLiteStore reads an ECDICT stardict.db database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens an existing ECDICT database and checks that it carries the
// stardict table.
func Open(path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}

	var n int
	if err := db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, table,
	).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading dictionary schema: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("dictionary %s has no %s table", path, table)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureIndexes creates the lookup indexes used by LookupHeadword. It is
// a no-op when they already exist.
func (s *SQLiteStore) EnsureIndexes(ctx context.Context) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_word_lower ON stardict(LOWER(word))`,
		`CREATE INDEX IF NOT EXISTS idx_sw ON stardict(sw)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating dictionary index: %w", err)
		}
	}
	return nil
}

func selectColumns() string {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = "COALESCE(" + c + ", '')"
	}
	return strings.Join(cols, ", ")
}

// Records streams every row of the stardict table.
func (s *SQLiteStore) Records(ctx context.Context) iter.Seq2[types.RawRecord, error] {
	return func(yield func(types.RawRecord, error) bool) {
		rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns()+` FROM `+table)
		if err != nil {
			yield(types.RawRecord{}, fmt.Errorf("querying dictionary: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			raw, err := scanRaw(rows)
			if err != nil {
				if !yield(types.RawRecord{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)) {
					return
				}
				continue
			}
			if !yield(raw, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(types.RawRecord{}, fmt.Errorf("iterating dictionary rows: %w", err))
		}
	}
}

// LookupHeadword queries a single word: case-insensitive headword first,
// then the stripped-word column. An exact-case spelling wins over other
// casings of the same word.
func (s *SQLiteStore) LookupHeadword(ctx context.Context, word string) (types.RawRecord, bool, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return types.RawRecord{}, false, nil
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns()+` FROM `+table+
			` WHERE LOWER(word) = LOWER(?) ORDER BY (word = ? COLLATE BINARY) DESC, word COLLATE BINARY LIMIT 1`,
		word, word)
	raw, err := scanRaw(row)
	if err == nil {
		return raw, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return types.RawRecord{}, false, fmt.Errorf("looking up %q: %w", word, err)
	}

	sw := resolve.StripKey(resolve.Normalize(word))
	if sw == "" {
		return types.RawRecord{}, false, nil
	}
	row = s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns()+` FROM `+table+` WHERE sw = ? ORDER BY word COLLATE BINARY LIMIT 1`, sw)
	raw, err = scanRaw(row)
	switch {
	case err == nil:
		return raw, true, nil
	case errors.Is(err, sql.ErrNoRows):
		return types.RawRecord{}, false, nil
	default:
		return types.RawRecord{}, false, fmt.Errorf("looking up %q by stripped word: %w", word, err)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRaw(sc scanner) (types.RawRecord, error) {
	var r types.RawRecord
	err := sc.Scan(
		&r.Word, &r.Phonetic, &r.Definition, &r.Translation, &r.POS,
		&r.Collins, &r.Oxford, &r.Tag, &r.BNC, &r.FRQ, &r.Exchange, &r.Detail,
	)
	return r, err
}
