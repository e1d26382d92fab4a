// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"context"
	"encoding/csv"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

var sample = []types.OutputRecord{
	{Front: `<div class="context">She <span class="highlight">went</span> home, "quietly".</div>`, Back: "<div>go\nv. 去</div>", Key: "went"},
	{Front: `<div class="word">cat</div>`, Back: `<div class="dict-entry">cat, n.</div>`, Key: "cat"},
}

func seqOf(recs []types.OutputRecord) iter.Seq2[types.OutputRecord, error] {
	return func(yield func(types.OutputRecord, error) bool) {
		for _, r := range recs {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func writeString(t *testing.T, w *Writer, recs []types.OutputRecord) string {
	t.Helper()
	var b strings.Builder
	n, err := w.Write(context.Background(), &b, seqOf(recs))
	require.NoError(t, err)
	assert.Equal(t, len(recs), n)
	return b.String()
}

// dataRows parses the CSV body after any '#' directive lines.
func dataRows(t *testing.T, s string) [][]string {
	t.Helper()
	var body []string
	for _, line := range strings.SplitAfter(s, "\n") {
		if len(body) == 0 && strings.HasPrefix(line, "#") {
			continue
		}
		body = append(body, line)
	}
	rows, err := csv.NewReader(strings.NewReader(strings.Join(body, ""))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteAnkiHeader(t *testing.T) {
	w := NewWriter(types.DeckConfig{GUID: true, DeckName: "Kindle", NoteType: "Basic"})
	out := writeString(t, w, sample)

	assert.True(t, strings.HasPrefix(out,
		"#separator:comma\n#html:true\n#columns:Front,Back,GUID\n#guid column:3\n#deck:Kindle\n#notetype:Basic\n"))

	rows := dataRows(t, out)
	require.Len(t, rows, 2)
	for i, rec := range sample {
		assert.Equal(t, []string{rec.Front, rec.Back, GUID(rec.Key)}, rows[i])
	}
}

func TestWriteHeaderModes(t *testing.T) {
	tests := []struct {
		name     string
		header   types.HeaderMode
		wantHead string
		wantRows int
	}{
		{"anki default", "", "#separator:comma\n#html:true\n#columns:Front,Back\n", 2},
		{"names", types.HeaderNames, "Front,Back\n", 3},
		{"none", types.HeaderNone, `"<div class=""context"">`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := writeString(t, NewWriter(types.DeckConfig{Header: tt.header}), sample)
			assert.True(t, strings.HasPrefix(out, tt.wantHead), out)
			assert.Len(t, dataRows(t, out), tt.wantRows)
		})
	}
}

func TestWriteUnknownHeader(t *testing.T) {
	w := &Writer{Header: "xml"}
	_, err := w.Write(context.Background(), &strings.Builder{}, seqOf(sample))
	assert.ErrorContains(t, err, "unknown header mode")
}

func TestGUIDIsDeterministic(t *testing.T) {
	assert.Equal(t, GUID("went"), GUID("went"))
	assert.NotEqual(t, GUID("went"), GUID("go"))
	assert.Len(t, GUID("went"), 36)
}

func TestWriteStopsOnSequenceError(t *testing.T) {
	boom := errors.New("boom")
	seq := func(yield func(types.OutputRecord, error) bool) {
		if !yield(sample[0], nil) {
			return
		}
		yield(types.OutputRecord{}, boom)
	}
	n, err := NewWriter(types.DeckConfig{}).Write(context.Background(), &strings.Builder{}, seq)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
}

func TestWriteFileReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "deck.csv")
	w := NewWriter(types.DeckConfig{Header: types.HeaderNone})

	n, err := w.WriteFile(context.Background(), path, seqOf(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, dataRows(t, string(data)), 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// A failing run leaves the previous deck untouched and no temp files.
	failing := func(yield func(types.OutputRecord, error) bool) {
		yield(types.OutputRecord{}, errors.New("broken source"))
	}
	_, err = w.WriteFile(context.Background(), path, failing)
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, after)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExport(t *testing.T) {
	rec := types.DictionaryRecord{Headword: "go"}
	cards := []types.Card{{
		Capture:  types.CapturedEntry{Word: "went", Sentence: "She went home."},
		Resolved: types.ResolvedEntry{QueryWord: "went", MatchedHeadword: "go", Record: &rec, MatchKind: types.MatchInflected, Via: "went"},
		Record:   sample[0],
	}}
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "cards.yaml")
	require.NoError(t, Export(yamlPath, cards))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []types.Card
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, cards, fromYAML)

	jsonPath := filepath.Join(dir, "cards.JSON")
	require.NoError(t, Export(jsonPath, cards))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"match_kind": "inflected"`)

	emptyPath := filepath.Join(dir, "empty.json")
	require.NoError(t, ExportJSON(emptyPath, nil))
	data, err = os.ReadFile(emptyPath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
