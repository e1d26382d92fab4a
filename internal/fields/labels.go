// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"strings"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

var posLabels = map[string]string{
	"a": "article",
	"c": "conjunction",
	"d": "determiner",
	"e": "existential",
	"i": "preposition",
	"j": "adjective",
	"m": "numeral",
	"n": "noun",
	"p": "pronoun",
	"r": "adverb",
	"t": "infinitive marker",
	"u": "interjection",
	"v": "verb",
	"x": "negation",
}

var relationLabels = map[types.Relation]string{
	types.RelPast:        "past tense",
	types.RelPastPart:    "past participle",
	types.RelPresentPart: "present participle",
	types.RelThird:       "third person singular",
	types.RelComparative: "comparative",
	types.RelSuperlative: "superlative",
	types.RelPlural:      "plural",
	types.RelRoot:        "root",
}

var tagLabels = map[string]string{
	"zk":    "Zhongkao",
	"gk":    "Gaokao",
	"cet4":  "CET-4",
	"cet6":  "CET-6",
	"ky":    "Kaoyan",
	"toefl": "TOEFL",
	"ielts": "IELTS",
	"gre":   "GRE",
}

// POSLabel returns the display name of a part-of-speech tag.
func POSLabel(tag string) string {
	if l, ok := posLabels[tag]; ok {
		return l
	}
	return tag
}

// RelationLabel returns the display name of a morphology relation.
func RelationLabel(rel types.Relation) string {
	if l, ok := relationLabels[rel]; ok {
		return l
	}
	return string(rel)
}

// TagLabel returns the display name of a level tag; unknown tags are
// shown upper-cased.
func TagLabel(tag string) string {
	if l, ok := tagLabels[tag]; ok {
		return l
	}
	return strings.ToUpper(tag)
}
