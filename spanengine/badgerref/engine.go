// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Department of Linguistics,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badgerref

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/czcorpus/corpuscoll/token"
	"github.com/czcorpus/corpuscoll/spanengine"
)

// Engine is a spanengine.Engine backed by a Store. Find performs a full
// per-sentence scan; this is a correctness-first reference, not a
// performance one.
type Engine struct {
	store *Store
}

// NewEngine wraps store as a spanengine.Engine.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

type sliceIterator struct {
	hits []spanengine.Hit
	pos  int
}

func (it *sliceIterator) Next() (spanengine.Hit, bool, error) {
	if it.pos >= len(it.hits) {
		return spanengine.Hit{}, false, nil
	}
	h := it.hits[it.pos]
	it.pos++
	return h, true, nil
}

func (it *sliceIterator) Close() error { return nil }

// Find scans every stored sentence and returns every span matching q, in
// sentence-id then start-position order.
func (e *Engine) Find(ctx context.Context, q spanengine.Query) (spanengine.HitIterator, error) {
	var hits []spanengine.Hit
	err := e.store.ForEachSentence(func(sent AnnotatedSentence) (bool, error) {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}
		for start := 0; start < len(sent.Tokens); start++ {
			if end, ok, err := matchFrom(sent.Tokens, start, q.Slots); err != nil {
				return false, err
			} else if ok {
				hits = append(hits, spanengine.Hit{SentenceID: sent.ID, Start: start, End: end})
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &sliceIterator{hits: hits}, nil
}

// matchFrom attempts to match slots starting at tokens[start], returning
// the inclusive end position of the match. A slot with a gap tries every
// offset in [GapMin, GapMax] for the next slot's start, smallest first.
func matchFrom(tokens []AnnotatedToken, start int, slots []spanengine.Slot) (int, bool, error) {
	if len(slots) == 0 {
		return start - 1, true, nil
	}
	if start >= len(tokens) {
		return 0, false, nil
	}
	slot := slots[0]
	ok, err := matchesSlot(tokens[start], slot)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	if len(slots) == 1 {
		return start, true, nil
	}
	for gap := slot.GapMin; gap <= slot.GapMax; gap++ {
		nextStart := start + 1 + gap
		if end, ok, err := matchFrom(tokens, nextStart, slots[1:]); err != nil {
			return 0, false, err
		} else if ok {
			return end, true, nil
		}
	}
	return 0, false, nil
}

func matchesSlot(tok AnnotatedToken, slot spanengine.Slot) (bool, error) {
	for _, c := range slot.Constraints {
		var field string
		switch c.Field {
		case "lemma":
			field = tok.Lemma
		case "word":
			field = tok.Word
		case "tag":
			field = tok.Tag
		case "upos":
			field = tok.UPos
		case "xpos":
			field = tok.XPos
		case "deprel":
			field = tok.Deprel
		default:
			return false, fmt.Errorf("unsupported field %q", c.Field)
		}
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return false, fmt.Errorf("invalid constraint regex %q: %w", c.Value, err)
		}
		matched := re.MatchString(field)
		if c.Op == "!=" {
			matched = !matched
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

// TotalFrequency returns the corpus-wide occurrence count of lemma (or
// word) stored by ingestion.
func (e *Engine) TotalFrequency(ctx context.Context, field, lemma string) (uint64, error) {
	return e.store.GetFrequency(field, lemma)
}

// Concordance resolves the sentence a hit occurred in, translated into
// the shared token.Sentence shape used for concordance rendering.
func (e *Engine) Concordance(ctx context.Context, hit spanengine.Hit) (token.Sentence, error) {
	sent, err := e.store.GetSentence(hit.SentenceID)
	if err != nil {
		return token.Sentence{}, fmt.Errorf("failed to resolve hit sentence %d: %w", hit.SentenceID, err)
	}
	toks := make([]token.Token, len(sent.Tokens))
	for i, t := range sent.Tokens {
		toks[i] = token.Token{Position: t.Position, Word: t.Word, Lemma: t.Lemma, Tag: t.Tag}
	}
	return token.Sentence{ID: sent.ID, Tokens: toks}, nil
}

// Group partitions hits by the lemma of the token at the 1-based slot
// position within each match, largest group first. The token is taken at
// offset position-1 from the match start, so a gap before that slot is
// not accounted for.
func (e *Engine) Group(ctx context.Context, hits spanengine.HitIterator, position int, limit int) ([]spanengine.HitGroup, error) {
	groups := make(map[string]*spanengine.HitGroup)
	for {
		h, ok, err := hits.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		sent, err := e.store.GetSentence(h.SentenceID)
		if err != nil {
			return nil, err
		}
		idx := h.Start + position - 1
		if idx < 0 || idx >= len(sent.Tokens) {
			continue
		}
		key := strings.ToLower(sent.Tokens[idx].Lemma)
		g, ok := groups[key]
		if !ok {
			g = &spanengine.HitGroup{Key: key}
			groups[key] = g
		}
		g.Count++
		g.Hits = append(g.Hits, h)
	}

	out := make([]spanengine.HitGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
