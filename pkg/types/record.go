// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchKind says how a captured word was resolved to a headword.
type MatchKind string

const (
	// MatchExact means the normalized word is itself a headword.
	MatchExact MatchKind = "exact"
	// MatchStripped means the word matched a headword once spaces,
	// hyphens and other punctuation were ignored on both sides.
	MatchStripped MatchKind = "stripped"
	// MatchInflected means the word is a declared surface form of a headword.
	MatchInflected MatchKind = "inflected"
	// MatchStem means the capture device's stem is a headword.
	MatchStem MatchKind = "stem"
	// MatchNotFound means no headword could be found.
	MatchNotFound MatchKind = "not_found"
)

// ResolvedEntry is the outcome of resolving one captured word.
type ResolvedEntry struct {
	// QueryWord is the captured word with its original casing, trimmed.
	QueryWord string `json:"query_word" yaml:"query_word"`

	// MatchedHeadword is the headword of Record; empty when NotFound.
	MatchedHeadword string `json:"matched_headword,omitempty" yaml:"matched_headword,omitempty"`

	// Record is nil when MatchKind is MatchNotFound.
	Record *DictionaryRecord `json:"record,omitempty" yaml:"record,omitempty"`

	MatchKind MatchKind `json:"match_kind" yaml:"match_kind"`

	// Via is the surface form the resolution went through (the query
	// word itself, or the stem for MatchStem).
	Via string `json:"via,omitempty" yaml:"via,omitempty"`
}

// Found reports whether the entry carries a dictionary record.
func (r ResolvedEntry) Found() bool {
	return r.MatchKind != MatchNotFound && r.Record != nil
}

// OutputRecord is one rendered flashcard.
type OutputRecord struct {
	// Front is the word in context (HTML fragment).
	Front string `json:"front" yaml:"front"`

	// Back is the formatted definition (HTML fragment).
	Back string `json:"back" yaml:"back"`

	// Key is the normalized captured word; stable across runs.
	Key string `json:"key" yaml:"key"`
}

// Card bundles everything produced for one captured entry.
type Card struct {
	Capture  CapturedEntry `json:"capture" yaml:"capture"`
	Resolved ResolvedEntry `json:"resolved" yaml:"resolved"`
	Record   OutputRecord  `json:"record" yaml:"record"`
}
