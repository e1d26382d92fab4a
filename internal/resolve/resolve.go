// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve maps a captured word to its best dictionary entry:
// direct headword first, then the morphology index, then a
// punctuation-insensitive match, then the capture device's own stem.
package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/vocab-deck/internal/morph"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

// Dictionary is the read-only lookup surface the resolver needs. Keys
// are already normalized (see Normalize and StripKey).
type Dictionary interface {
	Lookup(key string) (types.DictionaryRecord, bool)
	LookupStripped(key string) (types.DictionaryRecord, bool)
}

// Resolver resolves words against a dictionary snapshot and its
// morphology index. It holds no mutable state.
type Resolver struct {
	dict Dictionary
	idx  *morph.Index
}

// New returns a resolver. idx may be nil, which disables the
// inflected-form fallback.
func New(dict Dictionary, idx *morph.Index) *Resolver {
	return &Resolver{dict: dict, idx: idx}
}

// Resolve resolves a bare word. It never fails: a word with no
// dictionary relation yields MatchNotFound.
func (r *Resolver) Resolve(word string) types.ResolvedEntry {
	return r.resolve(word, "")
}

// ResolveCapture resolves a captured entry, using its stem as the last
// fallback.
func (r *Resolver) ResolveCapture(c types.CapturedEntry) types.ResolvedEntry {
	return r.resolve(c.Word, c.Stem)
}

func (r *Resolver) resolve(word, stem string) types.ResolvedEntry {
	display := strings.TrimSpace(word)
	out := types.ResolvedEntry{QueryWord: display, MatchKind: types.MatchNotFound}

	key := Normalize(word)
	if key == "" || r.dict == nil {
		return out
	}

	if rec, ok := r.dict.Lookup(key); ok {
		return matched(out, rec, types.MatchExact, display)
	}
	if rec, ok := r.inflected(key); ok {
		return matched(out, rec, types.MatchInflected, display)
	}
	if sk := StripKey(key); sk != "" {
		if rec, ok := r.dict.LookupStripped(sk); ok {
			return matched(out, rec, types.MatchStripped, display)
		}
	}
	if sk := Normalize(stem); sk != "" && sk != key {
		if rec, ok := r.dict.Lookup(sk); ok {
			return matched(out, rec, types.MatchStem, strings.TrimSpace(stem))
		}
	}
	return out
}

// inflected picks the preferred headword among those declaring key as a
// surface form. Candidates missing from the dictionary are ignored.
func (r *Resolver) inflected(key string) (types.DictionaryRecord, bool) {
	if r.idx == nil {
		return types.DictionaryRecord{}, false
	}
	var best types.DictionaryRecord
	found := false
	for _, head := range r.idx.Lookup(key) {
		rec, ok := r.dict.Lookup(Normalize(head))
		if !ok {
			continue
		}
		if !found || Prefer(rec, best) {
			best, found = rec, true
		}
	}
	return best, found
}

func matched(out types.ResolvedEntry, rec types.DictionaryRecord, kind types.MatchKind, via string) types.ResolvedEntry {
	out.MatchedHeadword = rec.Headword
	out.Record = &rec
	out.MatchKind = kind
	out.Via = via
	return out
}

// Prefer reports whether a should win over b when both claim the same
// surface form. Order: higher Collins rating, then lower FRQ rank, then
// lower BNC rank (0 = unranked sorts last), then headword ascending.
func Prefer(a, b types.DictionaryRecord) bool {
	if a.Frequency.Collins != b.Frequency.Collins {
		return a.Frequency.Collins > b.Frequency.Collins
	}
	if c := compareRank(a.Frequency.FRQ, b.Frequency.FRQ); c != 0 {
		return c < 0
	}
	if c := compareRank(a.Frequency.BNC, b.Frequency.BNC); c != 0 {
		return c < 0
	}
	return a.Headword < b.Headword
}

func compareRank(a, b int) int {
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize returns the lookup key of a word: NFC, trimmed, typographic
// apostrophes folded, lower-cased.
func Normalize(word string) string {
	w := norm.NFC.String(strings.TrimSpace(word))
	return strings.ToLower(apostrophes.Replace(w))
}

// StripKey keeps only the letters and digits of a normalized key, so
// "e-mail", "e mail" and "email" share a key.
func StripKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, key)
}
