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
	"sort"
	"strings"

	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/czcorpus/corpuscoll/pattern"
	"github.com/czcorpus/corpuscoll/relation"
	"github.com/czcorpus/corpuscoll/score"
	"github.com/czcorpus/corpuscoll/spanengine"
	"github.com/czcorpus/corpuscoll/termstats"
)

// Dispatcher answers collocation requests, choosing per request between
// the precomputed artifact and live pattern execution. All fields are
// read-only after construction and safe for concurrent use.
type Dispatcher struct {
	Artifact  *artifact.Reader
	Stats     *termstats.Reader
	Relations *relation.Config
	Engine    spanengine.Engine
}

func (d *Dispatcher) lookupRelation(id string) (relation.Definition, bool) {
	if d.Relations != nil {
		if def, ok := d.Relations.ByID(id); ok {
			return def, true
		}
	}
	for _, def := range relation.BuiltinRelations() {
		if def.ID == id {
			return def, true
		}
	}
	return relation.Definition{}, false
}

// GetCollocations implements the relation-dispatch algorithm: a Surface
// relation with no real constraint beyond the window, whose headword the
// artifact already has an entry for, is answered directly from it;
// everything else falls through to live pattern execution.
func (d *Dispatcher) GetCollocations(ctx context.Context, headword, relationID string, opts ...Option) (Result, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	def, ok := d.lookupRelation(relationID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownRelation, relationID)
	}

	if !d.knowsLemma(headword) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownLemma, headword)
	}

	if def.RelationType == relation.Surface && d.Artifact != nil && d.Artifact.HasLemma(headword) {
		eligible, err := isDefaultWindowRelation(def)
		if err != nil {
			return Result{}, err
		}
		if eligible {
			return d.fromArtifact(headword, o), nil
		}
	}

	return d.fromPattern(ctx, def, headword, o)
}

// isDefaultWindowRelation reports whether def's pattern imposes no
// constraint beyond occupying a window position (every slot's
// constraints are all the catch-all ".*" regex). Scenario: a relation
// that adds a real tag/deprel filter must NOT take this path even if
// marked Surface, so the live pattern result (and its C3-derived scores)
// stays authoritative for it.
func isDefaultWindowRelation(def relation.Definition) (bool, error) {
	p, err := pattern.Parse(def.Pattern)
	if err != nil {
		return false, fmt.Errorf("%w: relation %q: %v", ErrUnknownRelation, def.ID, err)
	}
	for _, slot := range p.Slots {
		values := make([]string, len(slot.Constraints))
		for i, c := range slot.Constraints {
			values[i] = c.Value
		}
		if !relation.IsUnconstrainedSlot(values) {
			return false, nil
		}
	}
	return true, nil
}

// knowsLemma reports whether either the artifact or the term-statistics
// store has ever observed headword; neither knowing it means there is no
// basis at all for computing a score, artifact or pattern path alike.
func (d *Dispatcher) knowsLemma(headword string) bool {
	if d.Artifact != nil && d.Artifact.HasLemma(headword) {
		return true
	}
	if d.Stats != nil {
		if _, ok := d.Stats.GetFrequency(strings.ToLower(headword)); ok {
			return true
		}
	}
	return false
}

func (d *Dispatcher) fromArtifact(headword string, o Options) Result {
	entry, ok := d.Artifact.GetCollocations(headword)
	if !ok {
		return Result{}
	}
	n := int64(d.Artifact.TotalTokens())
	out := make([]Collocation, 0, len(entry.Collocations))
	for _, c := range entry.Collocations {
		if uint64(c.Cooccurrence) < o.MinCooccurrence {
			continue
		}
		if float64(c.LogDice) < o.MinScore {
			continue
		}
		if o.PoS != "" && !strings.EqualFold(c.Pos, o.PoS) {
			continue
		}
		out = append(out, Collocation{
			Lemma:              c.Lemma,
			Pos:                c.Pos,
			Cooccurrence:       c.Cooccurrence,
			HeadFrequency:      entry.HeadwordFrequency,
			CollocateFrequency: c.Frequency,
			LogDice:            float64(c.LogDice),
			MI3:                score.MI3(c.Cooccurrence, entry.HeadwordFrequency, c.Frequency, n),
			TScore:             score.TScore(c.Cooccurrence, entry.HeadwordFrequency, c.Frequency, n),
			LogLikelihood:      score.LogLikelihood(c.Cooccurrence, entry.HeadwordFrequency, c.Frequency, n),
			MutualDist:         float64(c.MutualDist),
		})
	}
	finalizeResults(&out, o)
	return Result{Collocations: out}
}

// finalizeResults computes RRF, sorts by the requested measure and
// truncates to the requested limit; shared by the artifact and pattern
// execution paths so both honor Options identically.
func finalizeResults(items *[]Collocation, o Options) {
	applyRRF(*items)
	sortResults(*items, o.SortBy)
	if o.Limit > 0 && len(*items) > o.Limit {
		*items = (*items)[:o.Limit]
	}
}

func applyRRF(items []Collocation) {
	if len(items) == 0 {
		return
	}
	logDiceRank := rankOf(items, func(c Collocation) float64 { return c.LogDice })
	mi3Rank := rankOf(items, func(c Collocation) float64 { return c.MI3 })
	tScoreRank := rankOf(items, func(c Collocation) float64 { return c.TScore })
	for i := range items {
		items[i].RRFScore = score.RRF(logDiceRank[i], mi3Rank[i], tScoreRank[i])
	}
}

// rankOf returns, per item, its 0-based rank (best first) under key.
func rankOf(items []Collocation, key func(Collocation) float64) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return key(items[idx[a]]) > key(items[idx[b]]) })
	ranks := make([]int, len(items))
	for rank, i := range idx {
		ranks[i] = rank
	}
	return ranks
}
