// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocab-deck/internal/morph"
	"github.com/pdiddy/vocab-deck/internal/render"
	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

type mapDict map[string]types.DictionaryRecord

func (d mapDict) Lookup(key string) (types.DictionaryRecord, bool) {
	r, ok := d[key]
	return r, ok
}

func (d mapDict) LookupStripped(string) (types.DictionaryRecord, bool) {
	return types.DictionaryRecord{}, false
}

var records = []types.DictionaryRecord{
	{Headword: "go", Morphology: types.Morphology{Forms: []types.Form{{Relation: types.RelPast, Surface: "went"}}}},
	{Headword: "cat", Translations: []types.Sense{{Prefix: "n.", Text: "猫"}}},
	{Headword: "run"},
}

func newDriver(opts Options) *Driver {
	d := make(mapDict)
	for _, r := range records {
		d[r.Headword] = r
	}
	res := resolve.New(d, morph.Build(slices.Values(records)))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(res, render.New(types.RenderConfig{}), logger, opts)
}

// source yields the given words as captures and counts how many were pulled.
func source(pulled *int, words ...string) iter.Seq2[types.CapturedEntry, error] {
	return func(yield func(types.CapturedEntry, error) bool) {
		for _, w := range words {
			*pulled++
			if !yield(types.CapturedEntry{Word: w, Sentence: "I saw " + w + " today."}, nil) {
				return
			}
		}
	}
}

func collect(t *testing.T, seq iter.Seq2[types.OutputRecord, error]) []types.OutputRecord {
	t.Helper()
	var out []types.OutputRecord
	for rec, err := range seq {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func keys(recs []types.OutputRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Key
	}
	return out
}

var words = []string{"went", "cat", "zzz", "run", "Cat", "go", "nope", "walked", "went", "run", "cat", "x"}

func TestRunPreservesOrder(t *testing.T) {
	var pulled int
	seq, sum := newDriver(Options{}).Run(context.Background(), source(&pulled, words...))
	got := collect(t, seq)

	assert.Equal(t, []string{"went", "cat", "zzz", "run", "cat", "go", "nope", "walked", "went", "run", "cat", "x"}, keys(got))
	assert.Equal(t, len(words), sum.Emitted)
	assert.Equal(t, 6, sum.ByKind[types.MatchExact])
	assert.Equal(t, 2, sum.ByKind[types.MatchInflected])
	assert.Equal(t, 4, sum.ByKind[types.MatchNotFound])
}

func TestRunCountsMatchKinds(t *testing.T) {
	var pulled int
	seq, sum := newDriver(Options{}).Run(context.Background(), source(&pulled, "went", "cat", "zzz"))
	collect(t, seq)

	assert.Equal(t, 1, sum.ByKind[types.MatchInflected])
	assert.Equal(t, 1, sum.ByKind[types.MatchExact])
	assert.Equal(t, 1, sum.ByKind[types.MatchNotFound])
	assert.Equal(t, 3, sum.Emitted)
	assert.Zero(t, sum.Skipped)
}

func TestRunLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		workers int
		want    int
	}{
		{"unlimited", 0, 1, len(words)},
		{"limit below input", 3, 1, 3},
		{"limit above input", 100, 1, len(words)},
		{"limit with workers", 5, 4, 5},
		{"limit smaller than window", 2, 8, 2},
		{"limit one", 1, 3, 1},
	}
	var all int
	unlimited, _ := newDriver(Options{}).Run(context.Background(), source(&all, words...))
	full := collect(t, unlimited)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pulled int
			seq, sum := newDriver(Options{Limit: tt.limit, Workers: tt.workers}).Run(context.Background(), source(&pulled, words...))
			got := collect(t, seq)

			assert.Len(t, got, tt.want)
			assert.Equal(t, full[:tt.want], got)
			assert.Equal(t, tt.want, sum.Emitted)
			assert.LessOrEqual(t, pulled, max(tt.want, 1))
		})
	}
}

func TestRunIsRestartable(t *testing.T) {
	for _, workers := range []int{1, 4} {
		var pulled int
		seq, sum := newDriver(Options{Limit: 3, Workers: workers}).Run(context.Background(), source(&pulled, words...))

		first := collect(t, seq)
		second := collect(t, seq)

		assert.Equal(t, []string{"went", "cat", "zzz"}, keys(first))
		assert.Equal(t, first, second)
		assert.Equal(t, 3, sum.Emitted)
		assert.Equal(t, 1, sum.ByKind[types.MatchExact])
		assert.Equal(t, 1, sum.ByKind[types.MatchInflected])
		assert.Equal(t, 1, sum.ByKind[types.MatchNotFound])
	}
}

func TestRunSkipsEmptyWords(t *testing.T) {
	var pulled int
	seq, sum := newDriver(Options{Limit: 2}).Run(context.Background(), source(&pulled, "", "  ", "cat", "", "run", "go"))
	got := collect(t, seq)

	assert.Equal(t, []string{"cat", "run"}, keys(got))
	assert.Equal(t, 3, sum.Skipped)
	assert.Equal(t, 2, sum.Emitted)
}

func TestRunWorkersMatchSequential(t *testing.T) {
	var long []string
	for i := 0; i < 5; i++ {
		long = append(long, words...)
	}

	var p1, p2 int
	seqOut, _ := newDriver(Options{Workers: 1}).Run(context.Background(), source(&p1, long...))
	parOut, _ := newDriver(Options{Workers: 7}).Run(context.Background(), source(&p2, long...))

	assert.Equal(t, collect(t, seqOut), collect(t, parOut))
}

func TestRunSourceErrorEndsSequence(t *testing.T) {
	boom := errors.New("disk gone")
	src := func(yield func(types.CapturedEntry, error) bool) {
		if !yield(types.CapturedEntry{Word: "cat"}, nil) {
			return
		}
		if !yield(types.CapturedEntry{}, boom) {
			return
		}
		yield(types.CapturedEntry{Word: "run"}, nil)
	}

	seq, sum := newDriver(Options{}).Run(context.Background(), src)
	var recs []types.OutputRecord
	var errs []error
	for rec, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		recs = append(recs, rec)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
	assert.Equal(t, []string{"cat"}, keys(recs))
	assert.Equal(t, 1, sum.Emitted)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var pulled int
	seq, sum := newDriver(Options{}).Run(ctx, source(&pulled, words...))
	var errs []error
	for _, err := range seq {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
	assert.Zero(t, sum.Emitted)
}

func TestRunConsumerStopsEarly(t *testing.T) {
	var pulled int
	seq, _ := newDriver(Options{}).Run(context.Background(), source(&pulled, words...))
	for range seq {
		break
	}
	assert.Equal(t, 1, pulled)
}

func TestCardsCarryResolution(t *testing.T) {
	var pulled int
	cards, _ := newDriver(Options{Workers: 2}).Cards(context.Background(), source(&pulled, "went", "zzz"))

	var got []types.Card
	for c, err := range cards {
		require.NoError(t, err)
		got = append(got, c)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "go", got[0].Resolved.MatchedHeadword)
	assert.Equal(t, "went", got[0].Capture.Word)
	assert.Contains(t, got[0].Record.Front, `<span class="highlight">went</span>`)
	assert.Equal(t, types.MatchNotFound, got[1].Resolved.MatchKind)
	assert.Contains(t, got[1].Record.Back, render.NotFoundMarker)
}
