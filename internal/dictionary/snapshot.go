// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pdiddy/vocab-deck/internal/fields"
	"github.com/pdiddy/vocab-deck/internal/morph"
	"github.com/pdiddy/vocab-deck/internal/resolve"
	"github.com/pdiddy/vocab-deck/pkg/types"
)

// LoadSummary holds counts from loading a dictionary snapshot.
type LoadSummary struct {
	Rows       int
	Loaded     int
	Skipped    int
	Malformed  int
	Collisions int
	Forms      int
}

// Snapshot is an immutable in-memory view of the dictionary together
// with its morphology index. It implements resolve.Dictionary.
type Snapshot struct {
	byKey      map[string]types.DictionaryRecord
	byStripped map[string]string
	idx        *morph.Index
}

// Load reads every row of src, decodes it and builds the lookup maps and
// morphology index. Rows without a headword and malformed rows are
// skipped and counted; any other source error aborts the load.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Snapshot, LoadSummary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Snapshot{
		byKey:      make(map[string]types.DictionaryRecord),
		byStripped: make(map[string]string),
		idx:        morph.New(),
	}
	var sum LoadSummary

	for raw, err := range src.Records(ctx) {
		if err != nil {
			if errors.Is(err, ErrMalformedRow) {
				sum.Malformed++
				logger.Debug("skipping malformed dictionary row", "error", err)
				continue
			}
			return nil, sum, fmt.Errorf("loading dictionary: %w", err)
		}
		sum.Rows++

		rec := fields.Decode(raw)
		key := resolve.Normalize(rec.Headword)
		if key == "" {
			sum.Skipped++
			continue
		}
		s.idx.Add(rec)

		if prev, ok := s.byKey[key]; ok {
			sum.Collisions++
			if !preferSpelling(rec, prev, key) {
				continue
			}
		}
		s.byKey[key] = rec
	}

	for _, key := range slices.Sorted(maps.Keys(s.byKey)) {
		sk := resolve.StripKey(key)
		if sk == "" {
			continue
		}
		if prev, ok := s.byStripped[sk]; ok && !preferSpelling(s.byKey[key], s.byKey[prev], sk) {
			continue
		}
		s.byStripped[sk] = key
	}

	sum.Loaded = len(s.byKey)
	sum.Forms = s.idx.Len()

	attrs := []any{
		"rows", sum.Rows, "loaded", sum.Loaded, "forms", sum.Forms,
		"skipped", sum.Skipped, "malformed", sum.Malformed, "collisions", sum.Collisions,
	}
	if sum.Skipped > 0 || sum.Malformed > 0 {
		logger.Warn("dictionary loaded with skipped rows", attrs...)
	} else {
		logger.Info("dictionary loaded", attrs...)
	}
	return s, sum, nil
}

// preferSpelling reports whether a should replace b under key: a record
// spelled exactly as the key wins, then the resolver's preference order.
func preferSpelling(a, b types.DictionaryRecord, key string) bool {
	aExact, bExact := a.Headword == key, b.Headword == key
	if aExact != bExact {
		return aExact
	}
	return resolve.Prefer(a, b)
}

// Lookup returns the record whose normalized headword is key.
func (s *Snapshot) Lookup(key string) (types.DictionaryRecord, bool) {
	rec, ok := s.byKey[key]
	return rec, ok
}

// LookupStripped returns the record whose headword reduces to the
// stripped key.
func (s *Snapshot) LookupStripped(key string) (types.DictionaryRecord, bool) {
	k, ok := s.byStripped[key]
	if !ok {
		return types.DictionaryRecord{}, false
	}
	return s.byKey[k], true
}

// Index returns the morphology index built from the snapshot.
func (s *Snapshot) Index() *morph.Index {
	return s.idx
}

// Len returns the number of distinct headwords.
func (s *Snapshot) Len() int {
	return len(s.byKey)
}
