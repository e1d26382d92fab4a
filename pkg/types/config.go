// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" (default) or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// CaptureConfig holds settings for reading the Kindle capture log.
type CaptureConfig struct {
	// VocabDB is the path to the Kindle vocab.db file.
	VocabDB string `json:"vocab_db" yaml:"vocab_db" mapstructure:"vocab_db"`

	// Language keeps only captures in this language (e.g. "en"); empty keeps all.
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// Oldest orders captures oldest first instead of newest first.
	Oldest bool `json:"oldest" yaml:"oldest" mapstructure:"oldest"`
}

// DictionaryFormat identifies the on-disk layout of the dictionary.
type DictionaryFormat string

const (
	DictionaryAuto   DictionaryFormat = ""
	DictionarySQLite DictionaryFormat = "sqlite"
	DictionaryCSV    DictionaryFormat = "csv"
)

// DictionaryConfig holds settings for the ECDICT dictionary source.
type DictionaryConfig struct {
	// Path is the ECDICT stardict.db or stardict.csv file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Format forces the source format; empty picks it from the file extension.
	Format DictionaryFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// RenderConfig holds settings for the card renderer.
type RenderConfig struct {
	// InlineStyle prepends a <style> block to the back field.
	InlineStyle bool `json:"inline_style" yaml:"inline_style" mapstructure:"inline_style"`

	// MaxSenses caps translations and definitions per card (0 = all).
	MaxSenses int `json:"max_senses" yaml:"max_senses" mapstructure:"max_senses"`

	// ShowBook adds the source book title under the definition.
	ShowBook bool `json:"show_book" yaml:"show_book" mapstructure:"show_book"`
}

// HeaderMode selects what the deck writer puts before the records.
type HeaderMode string

const (
	// HeaderAnki writes Anki import directives (#separator, #html, ...).
	HeaderAnki HeaderMode = "anki"
	// HeaderNames writes a single row of column names.
	HeaderNames HeaderMode = "names"
	// HeaderNone writes records only.
	HeaderNone HeaderMode = "none"
)

// DeckConfig holds settings for the CSV deck output.
type DeckConfig struct {
	// Output is the CSV path; empty derives "<vocab db name>_deck.csv".
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	Header HeaderMode `json:"header" yaml:"header" mapstructure:"header"`

	// GUID adds a third column with a deterministic note GUID.
	GUID bool `json:"guid" yaml:"guid" mapstructure:"guid"`

	// DeckName and NoteType are emitted as Anki directives when set.
	DeckName string `json:"deck_name" yaml:"deck_name" mapstructure:"deck_name"`
	NoteType string `json:"note_type" yaml:"note_type" mapstructure:"note_type"`
}

// PipelineConfig holds settings for the pipeline driver.
type PipelineConfig struct {
	// Limit bounds the number of cards produced (0 = unlimited).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// Workers resolves and renders this many entries concurrently (<= 1 = sequential).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// Config groups every setting of a vocab-deck run.
type Config struct {
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Capture    CaptureConfig    `json:"capture" yaml:"capture" mapstructure:"capture"`
	Dictionary DictionaryConfig `json:"dictionary" yaml:"dictionary" mapstructure:"dictionary"`
	Render     RenderConfig     `json:"render" yaml:"render" mapstructure:"render"`
	Deck       DeckConfig       `json:"deck" yaml:"deck" mapstructure:"deck"`
	Pipeline   PipelineConfig   `json:"pipeline" yaml:"pipeline" mapstructure:"pipeline"`
}
