// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fields decodes the compact string encodings of dictionary
// fields into typed values. Every parser tolerates empty or malformed
// input: a bad token is dropped on its own and never fails the field or
// the record.
package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// ParsePOS decodes a part-of-speech distribution such as "n:4/v:96".
// Input order is kept because it encodes usage rank.
func ParsePOS(s string) []types.POSShare {
	var out []types.POSShare
	for _, tok := range strings.Split(s, "/") {
		tag, pct, ok := strings.Cut(strings.TrimSpace(tok), ":")
		if !ok {
			continue
		}
		tag = strings.ToLower(strings.TrimSpace(tag))
		if _, known := posLabels[tag]; !known {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(pct))
		if err != nil || n < 0 || n > 100 {
			continue
		}
		out = append(out, types.POSShare{Tag: tag, Percent: n})
	}
	return out
}

// senseAbbrev lists the part-of-speech abbreviations that may open a
// sense line. Other leading "Word." tokens ("Mr.", "St.") are text.
const senseAbbrev = `(?:n|v|vt|vi|a|adj|ad|adv|prep|conj|pron|int|interj|num|art|aux|abbr|pl|na|st)`

// sensePrefix matches a leading part-of-speech abbreviation, including
// compound ones like "vt.& vi.".
var sensePrefix = regexp.MustCompile(`^(` + senseAbbrev + `\.(?:\s*&\s*` + senseAbbrev + `\.)*)\s*(.*)$`)

// ParseSenses decodes newline-separated sense lines ("n. apple"). Lines
// are split on real newlines and on the two-character "\n" escape.
func ParseSenses(s string) []types.Sense {
	var out []types.Sense
	for _, line := range splitLines(s) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := sensePrefix.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[2]) != "" {
			out = append(out, types.Sense{Prefix: m[1], Text: strings.TrimSpace(m[2])})
			continue
		}
		out = append(out, types.Sense{Text: line})
	}
	return out
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, `\r\n`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// rootKindTag carries the relations of a headword to its root
// ("1:pd" means past tense and past participle of the "0:" form).
const rootKindTag = "1"

// ParseMorphology decodes an exchange field such as
// "p:went/d:gone/i:going/3:goes". Tokens may be separated by '/' or '&'.
func ParseMorphology(s string) types.Morphology {
	var m types.Morphology
	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '&' })
	for _, tok := range tokens {
		tag, val, ok := strings.Cut(strings.TrimSpace(tok), ":")
		if !ok {
			continue
		}
		tag = strings.TrimSpace(tag)
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		if tag == rootKindTag {
			for _, r := range val {
				rel := types.Relation(string(r))
				if rel != types.RelRoot && IsRelation(rel) {
					m.RootRelations = append(m.RootRelations, rel)
				}
			}
			continue
		}
		rel := types.Relation(tag)
		if !IsRelation(rel) {
			continue
		}
		m.Forms = append(m.Forms, types.Form{Relation: rel, Surface: val})
	}
	return m
}

// IsRelation reports whether rel is a known morphology relation tag.
func IsRelation(rel types.Relation) bool {
	_, ok := relationLabels[rel]
	return ok
}

// ParseRank decodes a non-negative integer metric. Empty, negative and
// unparseable values all yield 0, the "unranked" sentinel.
func ParseRank(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// SQLite may hand back REAL columns as "5.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// ParseCollins decodes a Collins star rating, clamped to 0..5.
func ParseCollins(s string) int {
	return min(ParseRank(s), 5)
}

// ParseOxford decodes the Oxford-3000 flag ("1", "true").
func ParseOxford(s string) bool {
	if ParseRank(s) > 0 {
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// ParseTags decodes a space-separated tag list, lower-cased and
// de-duplicated with first-seen order kept.
func ParseTags(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		t = strings.ToLower(t)
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Decode turns a raw dictionary row into a DictionaryRecord.
func Decode(raw types.RawRecord) types.DictionaryRecord {
	return types.DictionaryRecord{
		Headword:     strings.TrimSpace(raw.Word),
		Phonetic:     strings.TrimSpace(raw.Phonetic),
		POS:          ParsePOS(raw.POS),
		Translations: ParseSenses(raw.Translation),
		Definitions:  ParseSenses(raw.Definition),
		Frequency: types.Frequency{
			Collins: ParseCollins(raw.Collins),
			Oxford:  ParseOxford(raw.Oxford),
			BNC:     ParseRank(raw.BNC),
			FRQ:     ParseRank(raw.FRQ),
			Tags:    ParseTags(raw.Tag),
		},
		Morphology: ParseMorphology(raw.Exchange),
		Detail:     ParseDetail(raw.Detail),
	}
}

// ParseDetail splits the supplementary notes field into trimmed,
// non-empty lines.
func ParseDetail(s string) []string {
	var out []string
	for _, line := range splitLines(s) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
