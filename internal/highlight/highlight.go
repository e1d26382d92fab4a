// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package highlight marks the occurrence of a word inside its source
// sentence.
//
// A word character is a Unicode letter, digit or combining mark. Any
// other rune (space, punctuation, apostrophe, hyphen) is a boundary, so
// "cat" matches in "cat's" and "cat-like" but not in "category". Matching
// folds case rune by rune and only the first occurrence is marked.
package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Open and Close wrap the highlighted span.
const (
	Open  = `<span class="highlight">`
	Close = `</span>`
)

// Find returns the byte span of the first boundary-respecting,
// case-insensitive occurrence of word in sentence.
func Find(sentence, word string) (start, end int, ok bool) {
	word = strings.TrimSpace(word)
	if word == "" || sentence == "" {
		return 0, 0, false
	}
	first, _ := utf8.DecodeRuneInString(word)
	for i := 0; i < len(sentence); {
		r, size := utf8.DecodeRuneInString(sentence[i:])
		if equalFold(r, first) && atBoundaryBefore(sentence, i) {
			if j, matched := matchAt(sentence, i, word); matched && atBoundaryAfter(sentence, j) {
				return i, j, true
			}
		}
		i += size
	}
	return 0, 0, false
}

// Highlight wraps the first occurrence of word in sentence. When there
// is no boundary match the sentence is returned unchanged.
func Highlight(sentence, word string) string {
	return HighlightAny(sentence, word)
}

// HighlightAny tries each candidate in order and wraps the first one that
// occurs in sentence.
func HighlightAny(sentence string, candidates ...string) string {
	for _, c := range candidates {
		if start, end, ok := Find(sentence, c); ok {
			return Mark(sentence, start, end, func(s string) string { return s })
		}
	}
	return sentence
}

// Mark wraps sentence[start:end] and passes each of the three segments
// through escape, which lets callers HTML-escape the text around the
// markup they add.
func Mark(sentence string, start, end int, escape func(string) string) string {
	var b strings.Builder
	b.Grow(len(sentence) + len(Open) + len(Close))
	b.WriteString(escape(sentence[:start]))
	b.WriteString(Open)
	b.WriteString(escape(sentence[start:end]))
	b.WriteString(Close)
	b.WriteString(escape(sentence[end:]))
	return b.String()
}

// matchAt reports whether word matches sentence starting at byte i and
// returns the byte index just past the match.
func matchAt(sentence string, i int, word string) (int, bool) {
	j := i
	for _, wr := range word {
		if j >= len(sentence) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(sentence[j:])
		if !equalFold(sr, wr) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func atBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func atBoundaryAfter(s string, j int) bool {
	if j >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[j:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// equalFold reports whether a and b are equal under simple Unicode case
// folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
