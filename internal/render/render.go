// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles a resolved entry and its highlighted sentence
// into the two HTML fields of a flashcard.
package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/pdiddy/vocab-deck/internal/fields"
	"github.com/pdiddy/vocab-deck/internal/highlight"
	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

// NotFoundMarker is shown on the back of cards with no dictionary entry.
const NotFoundMarker = "No dictionary entry"

var frontTmpl = template.Must(template.New("front").Parse(
	`{{if .Sentence}}<div class="context">{{.Sentence}}</div>{{end}}<div class="word">{{.Word}}</div>`))

var backTmpl = template.Must(template.New("back").Parse(`
{{- if .Style}}{{.Style}}{{end -}}
<div class="dict-entry">
{{- if .NotFound -}}
<div class="section not-found">` + NotFoundMarker + `</div><div class="section word">{{.Word}}</div>
{{- else -}}
<div class="headword">{{.Headword}}</div>
{{- if .Note}}<div class="note">{{.Note}}</div>{{end -}}
{{- if .Phonetic}}<div class="section phonetic">[{{.Phonetic}}]</div>{{end -}}
{{- if .POS}}<div class="section pos">{{range .POS}}<span class="pos-item">{{.Label}} {{.Percent}}%</span>{{end}}</div>{{end -}}
{{- if .Senses}}<div class="section senses">{{range .Senses}}<div class="sense {{.Class}}">{{if .Prefix}}<span class="sense-pos">{{.Prefix}}</span> {{end}}{{.Text}}</div>{{end}}</div>{{end -}}
{{- with .Freq}}<div class="section freq">
{{- if .Stars}}<span class="freq-item">Collins {{.Stars}}</span>{{end -}}
{{- if .Oxford}}<span class="freq-item">Oxford 3000</span>{{end -}}
{{- if .BNC}}<span class="freq-item">BNC {{.BNC}}</span>{{end -}}
{{- if .FRQ}}<span class="freq-item">FRQ {{.FRQ}}</span>{{end -}}
{{- range .Tags}}<span class="freq-item tag">{{.}}</span>{{end -}}
</div>{{end -}}
{{- if .Forms}}<div class="section forms">{{range .Forms}}<span class="form-item">{{.Label}}: {{.Surface}}</span>{{end}}</div>{{end -}}
{{- if .Detail}}<div class="section detail">{{range $i, $line := .Detail}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>{{end -}}
{{- if .Book}}<div class="section source">{{.Book}}</div>{{end -}}
{{- end -}}
</div>`))

type frontView struct {
	Sentence template.HTML
	Word     string
}

type posView struct {
	Label   string
	Percent int
}

type senseView struct {
	Class  string
	Prefix string
	Text   string
}

type freqView struct {
	Stars  string
	Oxford bool
	BNC    int
	FRQ    int
	Tags   []string
}

type formView struct {
	Label   string
	Surface string
}

type backView struct {
	Style    template.HTML
	NotFound bool
	Word     string
	Headword string
	Note     string
	Phonetic string
	POS      []posView
	Senses   []senseView
	Freq     *freqView
	Forms    []formView
	Detail   []string
	Book     string
}

// Renderer turns resolved entries into output records. It is stateless
// and safe for concurrent use.
type Renderer struct {
	cfg types.RenderConfig
}

// New returns a renderer with the given settings.
func New(cfg types.RenderConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Render builds the front and back fields for one captured entry.
// Identical input always yields byte-identical output.
func (r *Renderer) Render(c types.CapturedEntry, res types.ResolvedEntry) (types.OutputRecord, error) {
	word := strings.TrimSpace(c.Word)
	if res.QueryWord != "" {
		word = res.QueryWord
	}

	var front strings.Builder
	fv := frontView{
		Sentence: highlightSentence(c.Sentence, candidates(c, res)),
		Word:     word,
	}
	if err := frontTmpl.Execute(&front, fv); err != nil {
		return types.OutputRecord{}, fmt.Errorf("rendering front of %q: %w", word, err)
	}

	var back strings.Builder
	if err := backTmpl.Execute(&back, r.backView(c, res, word)); err != nil {
		return types.OutputRecord{}, fmt.Errorf("rendering back of %q: %w", word, err)
	}

	return types.OutputRecord{
		Front: front.String(),
		Back:  back.String(),
		Key:   resolve.Normalize(word),
	}, nil
}

func (r *Renderer) backView(c types.CapturedEntry, res types.ResolvedEntry, word string) backView {
	if !res.Found() {
		return backView{NotFound: true, Word: word}
	}
	rec := res.Record

	v := backView{
		Headword: rec.Headword,
		Note:     note(res),
		Phonetic: rec.Phonetic,
		Senses:   interleave(capSenses(rec.Translations, r.cfg.MaxSenses), capSenses(rec.Definitions, r.cfg.MaxSenses)),
		Detail:   rec.Detail,
	}
	if r.cfg.InlineStyle {
		v.Style = stylesheet
	}
	if r.cfg.ShowBook {
		v.Book = strings.TrimSpace(c.Book)
	}
	for _, p := range rec.POS {
		v.POS = append(v.POS, posView{Label: fields.POSLabel(p.Tag), Percent: p.Percent})
	}
	if f := rec.Frequency; !f.IsEmpty() {
		fv := &freqView{
			Stars:  strings.Repeat("★", f.Collins),
			Oxford: f.Oxford,
			BNC:    f.BNC,
			FRQ:    f.FRQ,
		}
		for _, t := range f.Tags {
			fv.Tags = append(fv.Tags, fields.TagLabel(t))
		}
		v.Freq = fv
	}
	for _, f := range rec.Morphology.Forms {
		v.Forms = append(v.Forms, formView{Label: fields.RelationLabel(f.Relation), Surface: f.Surface})
	}
	return v
}

// candidates lists the surface forms to look for in the sentence, most
// specific first.
func candidates(c types.CapturedEntry, res types.ResolvedEntry) []string {
	out := []string{c.Word, res.Via, c.Stem, res.MatchedHeadword}
	if res.Record != nil {
		for _, f := range res.Record.Morphology.Forms {
			out = append(out, f.Surface)
		}
	}
	return out
}

// highlightSentence escapes the sentence and wraps the first matching
// candidate.
func highlightSentence(sentence string, cands []string) template.HTML {
	if sentence == "" {
		return ""
	}
	for _, w := range cands {
		if start, end, ok := highlight.Find(sentence, w); ok {
			return template.HTML(highlight.Mark(sentence, start, end, html.EscapeString))
		}
	}
	return template.HTML(html.EscapeString(sentence))
}

// note explains how the query word relates to the headword shown.
func note(res types.ResolvedEntry) string {
	rec := res.Record
	switch res.MatchKind {
	case types.MatchInflected:
		var labels []string
		for _, f := range rec.Morphology.Forms {
			if f.Relation != types.RelRoot && strings.EqualFold(f.Surface, res.Via) {
				labels = append(labels, fields.RelationLabel(f.Relation))
			}
		}
		if len(labels) > 0 {
			return fmt.Sprintf("%s: %s of %s", res.Via, strings.Join(labels, ", "), rec.Headword)
		}
		return res.Via + " → " + rec.Headword
	case types.MatchStripped, types.MatchStem:
		return res.Via + " → " + rec.Headword
	case types.MatchExact:
		root, ok := rec.Morphology.Root()
		if !ok || len(rec.Morphology.RootRelations) == 0 {
			return ""
		}
		labels := make([]string, len(rec.Morphology.RootRelations))
		for i, rel := range rec.Morphology.RootRelations {
			labels[i] = fields.RelationLabel(rel)
		}
		return fmt.Sprintf("%s of %s", strings.Join(labels, ", "), root)
	}
	return ""
}

func capSenses(s []types.Sense, n int) []types.Sense {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// interleave alternates target-language and source-language senses by rank.
func interleave(target, source []types.Sense) []senseView {
	var out []senseView
	for i := 0; i < max(len(target), len(source)); i++ {
		if i < len(target) {
			out = append(out, senseView{Class: "translation", Prefix: target[i].Prefix, Text: target[i].Text})
		}
		if i < len(source) {
			out = append(out, senseView{Class: "definition", Prefix: source[i].Prefix, Text: source[i].Text})
		}
	}
	return out
}
