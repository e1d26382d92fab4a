// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the vocab-deck stages:
// captured words, dictionary records, resolution results, output cards,
// and the configuration structs.
package types

// CapturedEntry is one word looked up on the e-reader together with the
// sentence it was read in.
type CapturedEntry struct {
	// Word is the word as captured (e.g. "went").
	Word string `json:"word" yaml:"word"`

	// Sentence is the originating sentence; may be empty.
	Sentence string `json:"sentence,omitempty" yaml:"sentence,omitempty"`

	// Stem is the capture device's own base-form guess (Kindle WORDS.stem).
	Stem string `json:"stem,omitempty" yaml:"stem,omitempty"`

	// Book is the title of the book the lookup happened in.
	Book string `json:"book,omitempty" yaml:"book,omitempty"`

	// Language is the capture language code (e.g. "en").
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// RawRecord is a dictionary row exactly as the source stores it. All
// fields keep their compact string encodings; fields.Decode turns a
// RawRecord into a DictionaryRecord.
type RawRecord struct {
	Word        string
	Phonetic    string
	Definition  string
	Translation string
	POS         string
	Collins     string
	Oxford      string
	Tag         string
	BNC         string
	FRQ         string
	Exchange    string
	Detail      string
}

// POSShare is one part-of-speech tag with its share of usage in percent.
type POSShare struct {
	Tag     string `json:"tag" yaml:"tag"`
	Percent int    `json:"percent" yaml:"percent"`
}

// Sense is one translation or definition line, e.g. Prefix "vt." and
// Text "to move from one place to another".
type Sense struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Text   string `json:"text" yaml:"text"`
}

// Frequency groups the frequency and difficulty metrics of a headword.
// Zero means absent for every numeric field; rank 1 is the most frequent.
type Frequency struct {
	Collins int      `json:"collins,omitempty" yaml:"collins,omitempty"`
	Oxford  bool     `json:"oxford,omitempty" yaml:"oxford,omitempty"`
	BNC     int      `json:"bnc,omitempty" yaml:"bnc,omitempty"`
	FRQ     int      `json:"frq,omitempty" yaml:"frq,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// IsEmpty reports whether no metric is present.
func (f Frequency) IsEmpty() bool {
	return f.Collins == 0 && !f.Oxford && f.BNC == 0 && f.FRQ == 0 && len(f.Tags) == 0
}

// Relation identifies how a surface form relates to its headword.
type Relation string

const (
	RelPast        Relation = "p"
	RelPastPart    Relation = "d"
	RelPresentPart Relation = "i"
	RelThird       Relation = "3"
	RelComparative Relation = "r"
	RelSuperlative Relation = "t"
	RelPlural      Relation = "s"
	// RelRoot points from a derived headword back to its root word.
	RelRoot Relation = "0"
)

// Form is one inflected or derived surface form of a headword.
type Form struct {
	Relation Relation `json:"relation" yaml:"relation"`
	Surface  string   `json:"surface" yaml:"surface"`
}

// Morphology is the decoded exchange field of a headword.
type Morphology struct {
	// Forms lists the surface forms in source order.
	Forms []Form `json:"forms,omitempty" yaml:"forms,omitempty"`

	// RootRelations says which forms of the root this headword is, when
	// the headword is itself an inflection (e.g. "went" is RelPast of "go").
	RootRelations []Relation `json:"root_relations,omitempty" yaml:"root_relations,omitempty"`
}

// IsEmpty reports whether the morphology carries no forms.
func (m Morphology) IsEmpty() bool {
	return len(m.Forms) == 0
}

// Root returns the root surface form, if the headword declares one.
func (m Morphology) Root() (string, bool) {
	for _, f := range m.Forms {
		if f.Relation == RelRoot {
			return f.Surface, true
		}
	}
	return "", false
}

// DictionaryRecord is a fully decoded dictionary entry.
type DictionaryRecord struct {
	Headword     string     `json:"headword" yaml:"headword"`
	Phonetic     string     `json:"phonetic,omitempty" yaml:"phonetic,omitempty"`
	POS          []POSShare `json:"pos,omitempty" yaml:"pos,omitempty"`
	Translations []Sense    `json:"translations,omitempty" yaml:"translations,omitempty"`
	Definitions  []Sense    `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Frequency    Frequency  `json:"frequency" yaml:"frequency"`
	Morphology   Morphology `json:"morphology" yaml:"morphology"`

	// Detail holds the free-form supplementary notes, one line each.
	Detail []string `json:"detail,omitempty" yaml:"detail,omitempty"`
}
