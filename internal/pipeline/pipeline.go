// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives captured entries through resolution and
// rendering and yields finished cards in input order.
package pipeline

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/vocab-deck/internal/render"
	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

// Options controls a pipeline run.
type Options struct {
	// Limit bounds the number of emitted records; 0 means unlimited.
	Limit int

	// Workers is the size of the concurrent resolve+render window.
	// Values below 2 process entries one at a time.
	Workers int
}

// Summary reports what a run did. It is filled while the sequence is
// consumed and is final once iteration ends.
type Summary struct {
	Emitted int
	Skipped int
	Failed  int
	ByKind  map[types.MatchKind]int
}

// Driver wires a resolver and a renderer into a lazy card sequence.
type Driver struct {
	res    *resolve.Resolver
	r      *render.Renderer
	logger *slog.Logger
	opts   Options
}

// New returns a driver. A nil logger falls back to slog.Default.
func New(res *resolve.Resolver, r *render.Renderer, logger *slog.Logger, opts Options) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{res: res, r: r, logger: logger, opts: opts}
}

// Run yields one output record per captured entry, in input order.
func (d *Driver) Run(ctx context.Context, captures iter.Seq2[types.CapturedEntry, error]) (iter.Seq2[types.OutputRecord, error], *Summary) {
	cards, sum := d.Cards(ctx, captures)
	return func(yield func(types.OutputRecord, error) bool) {
		for card, err := range cards {
			if !yield(card.Record, err) {
				return
			}
		}
	}, sum
}

// Cards yields the full card bundle per captured entry. An error from
// the capture source or the context is yielded once and ends the
// sequence. Each iteration recomputes from the capture source and resets
// the summary, so the summary always describes the latest pass.
func (d *Driver) Cards(ctx context.Context, captures iter.Seq2[types.CapturedEntry, error]) (iter.Seq2[types.Card, error], *Summary) {
	sum := &Summary{ByKind: make(map[types.MatchKind]int)}

	seq := func(yield func(types.Card, error) bool) {
		*sum = Summary{ByKind: make(map[types.MatchKind]int)}
		defer d.logSummary(sum)

		batch := make([]types.CapturedEntry, 0, max(d.opts.Workers, 1))
		for c, err := range captures {
			if err != nil {
				yield(types.Card{}, fmt.Errorf("reading captures: %w", err))
				return
			}
			if err := ctx.Err(); err != nil {
				yield(types.Card{}, err)
				return
			}
			if strings.TrimSpace(c.Word) == "" {
				sum.Skipped++
				d.logger.Debug("skipping capture with empty word", "sentence", c.Sentence)
				continue
			}

			batch = append(batch, c)
			if len(batch) < d.window(sum) {
				continue
			}
			if !d.flush(ctx, batch, sum, yield) || d.done(sum) {
				return
			}
			batch = batch[:0]
		}
		if len(batch) > 0 {
			d.flush(ctx, batch, sum, yield)
		}
	}
	return seq, sum
}

// window is the number of entries to process together: the worker count
// capped by the records still allowed under the limit.
func (d *Driver) window(sum *Summary) int {
	n := max(d.opts.Workers, 1)
	if d.opts.Limit > 0 {
		n = min(n, d.opts.Limit-sum.Emitted)
	}
	return max(n, 1)
}

func (d *Driver) done(sum *Summary) bool {
	return d.opts.Limit > 0 && sum.Emitted >= d.opts.Limit
}

type result struct {
	card types.Card
	err  error
}

// flush processes a batch and yields its cards in order. It returns
// false when iteration must stop.
func (d *Driver) flush(ctx context.Context, batch []types.CapturedEntry, sum *Summary, yield func(types.Card, error) bool) bool {
	results, err := d.process(ctx, batch)
	if err != nil {
		yield(types.Card{}, err)
		return false
	}
	for _, r := range results {
		if r.err != nil {
			sum.Failed++
			d.logger.Warn("skipping entry", "word", r.card.Capture.Word, "error", r.err)
			continue
		}
		sum.Emitted++
		sum.ByKind[r.card.Resolved.MatchKind]++
		if !yield(r.card, nil) {
			return false
		}
	}
	return true
}

func (d *Driver) process(ctx context.Context, batch []types.CapturedEntry) ([]result, error) {
	out := make([]result, len(batch))
	if len(batch) == 1 {
		out[0] = d.build(batch[0])
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = d.build(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Driver) build(c types.CapturedEntry) result {
	resolved := d.res.ResolveCapture(c)
	card := types.Card{Capture: c, Resolved: resolved}
	rec, err := d.r.Render(c, resolved)
	if err != nil {
		return result{card: card, err: err}
	}
	card.Record = rec
	return result{card: card}
}

var kinds = []types.MatchKind{
	types.MatchExact,
	types.MatchStripped,
	types.MatchInflected,
	types.MatchStem,
	types.MatchNotFound,
}

func (d *Driver) logSummary(sum *Summary) {
	attrs := []any{"emitted", sum.Emitted, "skipped", sum.Skipped, "failed", sum.Failed}
	for _, k := range kinds {
		attrs = append(attrs, string(k), sum.ByKind[k])
	}
	if sum.Skipped > 0 || sum.Failed > 0 {
		d.logger.Warn("pipeline finished with skipped entries", attrs...)
		return
	}
	d.logger.Info("pipeline finished", attrs...)
}
