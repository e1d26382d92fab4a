// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kindle

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

type lookup struct {
	wordKey, bookKey, usage string
	ts                      int64
}

// writeVocabDB creates a vocab.db with the Kindle schema.
func writeVocabDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE WORDS (id TEXT PRIMARY KEY NOT NULL UNIQUE, word TEXT, stem TEXT, lang TEXT, category INTEGER DEFAULT 0, timestamp INTEGER DEFAULT 0, profileid TEXT)`,
		`CREATE TABLE LOOKUPS (id TEXT PRIMARY KEY NOT NULL, word_key TEXT, book_key TEXT, dict_key TEXT, pos TEXT, usage TEXT, timestamp INTEGER DEFAULT 0)`,
		`CREATE TABLE BOOK_INFO (id TEXT PRIMARY KEY NOT NULL, asin TEXT, guid TEXT, lang TEXT, title TEXT, authors TEXT)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	words := []struct {
		id, word, stem, lang string
		ts                   int64
	}{
		{"en:went", "went", "go", "en", 300},
		{"en:Cat", "en:Cat", "cat", "en", 200},
		{"en:cat", "cat", "cat", "en", 100},
		{"de:Haus", "Haus", "Haus", "de", 250},
		{"en:lonely", "lonely", "lonely", "en", 50},
	}
	for _, w := range words {
		_, err := db.Exec(`INSERT INTO WORDS (id, word, stem, lang, timestamp) VALUES (?, ?, ?, ?, ?)`,
			w.id, w.word, w.stem, w.lang, w.ts)
		require.NoError(t, err)
	}

	_, err = db.Exec(`INSERT INTO BOOK_INFO (id, title) VALUES ('b1', ' Dune '), ('b2', 'Emma')`)
	require.NoError(t, err)

	lookups := []lookup{
		{"en:went", "b1", "  ", 10},
		{"en:went", "b1", "She went home.", 11},
		{"en:went", "b2", "He went away.", 12},
		{"en:Cat", "b2", "The Cat sat.", 13},
		{"en:cat", "b1", "A cat.", 14},
		{"de:Haus", "b2", "Das Haus ist alt.", 15},
	}
	for i, l := range lookups {
		_, err := db.Exec(`INSERT INTO LOOKUPS (id, word_key, book_key, usage, timestamp) VALUES (?, ?, ?, ?, ?)`,
			i, l.wordKey, l.bookKey, l.usage, l.ts)
		require.NoError(t, err)
	}
	return path
}

func captures(t *testing.T, opts Options) []types.CapturedEntry {
	t.Helper()
	src, err := Open(writeVocabDB(t), opts)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })

	var out []types.CapturedEntry
	for c, err := range src.Captures(context.Background()) {
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func words(cs []types.CapturedEntry) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Word
	}
	return out
}

func TestCapturesNewestFirst(t *testing.T) {
	got := captures(t, Options{})
	assert.Equal(t, []string{"went", "Haus", "Cat", "lonely"}, words(got))

	went := got[0]
	assert.Equal(t, "She went home.", went.Sentence)
	assert.Equal(t, "go", went.Stem)
	assert.Equal(t, "Dune", went.Book)
	assert.Equal(t, "en", went.Language)

	lonely := got[3]
	assert.Empty(t, lonely.Sentence)
	assert.Empty(t, lonely.Book)
}

func TestCapturesOldestFirst(t *testing.T) {
	got := captures(t, Options{Oldest: true})
	assert.Equal(t, []string{"lonely", "cat", "Haus", "went"}, words(got))
	assert.Equal(t, "A cat.", got[1].Sentence)
}

func TestCapturesLanguageFilter(t *testing.T) {
	got := captures(t, Options{Language: "DE"})
	require.Len(t, got, 1)
	assert.Equal(t, "Haus", got[0].Word)
	assert.Equal(t, "Emma", got[0].Book)
}

func TestCapturesStopEarly(t *testing.T) {
	src, err := Open(writeVocabDB(t), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })

	n := 0
	for _, err := range src.Captures(context.Background()) {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestOpenRejectsOtherDatabases(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"), Options{})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE WORDS (id TEXT)`)
	require.NoError(t, err)
	db.Close()

	_, err = Open(path, Options{})
	assert.ErrorContains(t, err, "missing LOOKUPS table")
}

func TestStripLanguage(t *testing.T) {
	tests := map[string]string{
		"en:went":  "went",
		"went":     "went",
		" en:go ":  "go",
		"":         "",
		"zh-CN:字":  "字",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripLanguage(in), in)
	}
}
