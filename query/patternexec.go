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

package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/czcorpus/corpuscoll/pattern"
	"github.com/czcorpus/corpuscoll/relation"
	"github.com/czcorpus/corpuscoll/score"
	"github.com/czcorpus/corpuscoll/spanengine"
)

// collGroup accumulates one collocate lemma's match count and its first
// observed coarse tag while streaming hits.
type collGroup struct {
	cooccurrence uint64
	pos          string
}

// fromPattern implements pattern execution: substitute, compile,
// execute, group by collocate lemma, score from the term-statistics
// store, then (for dual relations) merge the swapped-positions pass
// before filtering/sorting/truncating.
func (d *Dispatcher) fromPattern(ctx context.Context, def relation.Definition, headword string, o Options) (Result, error) {
	groups, cancelled, err := d.executePattern(ctx, def, headword, def.HeadPosition, def.CollocatePosition)
	if err != nil {
		return Result{}, err
	}
	if def.Dual {
		swapped, cancelled2, err := d.executePattern(ctx, def, headword, def.CollocatePosition, def.HeadPosition)
		if err != nil {
			return Result{}, err
		}
		groups = mergeGroups(groups, swapped)
		cancelled = cancelled || cancelled2
	}

	headFreq, _ := d.Stats.GetFrequency(strings.ToLower(headword))
	n := int64(d.Stats.TotalTokens())

	out := make([]Collocation, 0, len(groups))
	for lemma, g := range groups {
		if g.cooccurrence < o.MinCooccurrence {
			continue
		}
		collFreq, _ := d.Stats.GetFrequency(lemma)
		logDice := score.LogDice(g.cooccurrence, headFreq, collFreq)
		if logDice < o.MinScore {
			continue
		}
		if o.PoS != "" && !strings.EqualFold(g.pos, o.PoS) {
			continue
		}
		out = append(out, Collocation{
			Lemma:              lemma,
			Pos:                g.pos,
			Cooccurrence:       g.cooccurrence,
			HeadFrequency:      headFreq,
			CollocateFrequency: collFreq,
			LogDice:            logDice,
			MI3:                score.MI3(g.cooccurrence, headFreq, collFreq, n),
			TScore:             score.TScore(g.cooccurrence, headFreq, collFreq, n),
			LogLikelihood:      score.LogLikelihood(g.cooccurrence, headFreq, collFreq, n),
		})
	}
	finalizeResults(&out, o)
	return Result{Collocations: out, Cancelled: cancelled}, nil
}

// executePattern runs one direction of def's pattern with headword
// substituted at headPos, streaming hits and grouping by the lemma at
// collPos. It returns early (cancelled=true) if ctx is done mid-stream,
// keeping whatever had already been grouped.
func (d *Dispatcher) executePattern(
	ctx context.Context,
	def relation.Definition,
	headword string,
	headPos, collPos int,
) (map[string]collGroup, bool, error) {
	p, err := pattern.Parse(def.Pattern)
	if err != nil {
		return nil, false, fmt.Errorf("relation %q: %w", def.ID, err)
	}
	substituted, err := pattern.Substitute(p, headPos, headword)
	if err != nil {
		return nil, false, fmt.Errorf("relation %q: %w", def.ID, err)
	}
	q := pattern.Compile(substituted)

	it, err := d.Engine.Find(ctx, q)
	if err != nil {
		return nil, false, err
	}
	defer it.Close()

	groups := make(map[string]collGroup)
	totalSlots := len(p.Slots)
	for {
		select {
		case <-ctx.Done():
			return groups, true, nil
		default:
		}
		hit, ok, err := it.Next()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		sent, err := d.Engine.Concordance(ctx, hit)
		if err != nil {
			return nil, false, err
		}
		idx := collocateTokenIndex(hit, collPos, totalSlots)
		if idx < 0 || idx >= len(sent.Tokens) {
			continue
		}
		tok := sent.Tokens[idx]
		key := strings.ToLower(tok.Lemma)
		g := groups[key]
		g.cooccurrence++
		if g.pos == "" {
			g.pos = tok.Tag
		}
		groups[key] = g
	}
	return groups, false, nil
}

// collocateTokenIndex resolves the sentence-local token index of the
// collocate slot. A Hit only carries the match's overall Start/End, so
// this is exact for the first slot (never preceded by a gap) and the
// last slot (End already accounts for every preceding gap); a collocate
// at an interior slot after a gap is approximated by straight-line
// offset from Start, which is exact for every relation shipped here
// (none place the collocate at an interior gapped slot).
func collocateTokenIndex(hit spanengine.Hit, collPos, totalSlots int) int {
	switch {
	case collPos == 1:
		return hit.Start
	case collPos == totalSlots:
		return hit.End
	default:
		return hit.Start + (collPos - 1)
	}
}

// mergeGroups sums cooccurrence across both dual-relation passes,
// keeping whichever pass first observed a non-empty coarse tag.
func mergeGroups(a, b map[string]collGroup) map[string]collGroup {
	out := make(map[string]collGroup, len(a))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		g := out[k]
		g.cooccurrence += v.cooccurrence
		if g.pos == "" {
			g.pos = v.pos
		}
		out[k] = g
	}
	return out
}
