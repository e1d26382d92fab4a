// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package morph maps inflected and derived surface forms back to the
// headwords that declare them.
package morph

import (
	"iter"
	"slices"
	"strings"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// Index maps a lower-cased surface form to every headword declaring it.
// Build it once; it is read-only afterwards and safe for concurrent reads.
type Index struct {
	forms map[string][]string
}

// New returns an empty index.
func New() *Index {
	return &Index{forms: make(map[string][]string)}
}

// Build indexes the morphology of every record.
func Build(records iter.Seq[types.DictionaryRecord]) *Index {
	idx := New()
	for rec := range records {
		idx.Add(rec)
	}
	return idx
}

// Add indexes the forms of a single record. Candidate lists stay sorted
// and free of duplicates, so the result does not depend on insertion order.
func (idx *Index) Add(rec types.DictionaryRecord) {
	if rec.Headword == "" {
		return
	}
	for _, f := range rec.Morphology.Forms {
		key := strings.ToLower(strings.TrimSpace(f.Surface))
		if key == "" {
			continue
		}
		heads := idx.forms[key]
		i, found := slices.BinarySearch(heads, rec.Headword)
		if found {
			continue
		}
		idx.forms[key] = slices.Insert(heads, i, rec.Headword)
	}
}

// Lookup returns the headwords declaring form, case-insensitively.
// The result is empty, never nil-with-error, when nothing matches.
func (idx *Index) Lookup(form string) []string {
	heads := idx.forms[strings.ToLower(strings.TrimSpace(form))]
	return slices.Clone(heads)
}

// Len returns the number of distinct surface forms indexed.
func (idx *Index) Len() int {
	return len(idx.forms)
}
