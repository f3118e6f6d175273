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

package build

import (
	"container/heap"
	"sort"

	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/czcorpus/corpuscoll/lexicon"
	"github.com/czcorpus/corpuscoll/score"
)

// candidate is one collocate still in contention for a headword's top-K,
// scored by logDice with a lemma-ascending tiebreak so truncation at the
// K boundary is deterministic.
type candidate struct {
	lemma   string
	pos     string
	coocc   uint64
	freq    uint64
	logDice float64
	mutDist float64
}

type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].logDice != h[j].logDice {
		return h[i].logDice < h[j].logDice
	}
	// min-heap root should be the weakest candidate; on a tie the
	// lexicographically later lemma is weaker so it's evicted first.
	return h[i].lemma > h[j].lemma
}
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// reduceShard walks one shard's merged, count-filtered pair stream
// (ascending key, so contiguous runs share a headword) and reduces each
// headword's collocates to its top-K by logDice, skipping headwords
// below minFrequency.
func reduceShard(
	cfg Config,
	merged []artifact.PairRecord,
	entries []lexicon.Entry,
	totalTokens uint64,
	stats *Stats,
) []artifact.CollocationEntry {
	var out []artifact.CollocationEntry
	i := 0
	for i < len(merged) {
		a, _ := unpackPair(uint64(merged[i].Key))
		j := i
		h := &candidateHeap{}
		for j < len(merged) {
			ka, kb := unpackPair(uint64(merged[j].Key))
			if ka != a {
				break
			}
			coocc := uint64(merged[j].Count)
			if coocc >= uint64(cfg.MinCooccurrence) && int(kb) < len(entries) && kb != a {
				fA := entries[a].Frequency
				fB := entries[kb].Frequency
				ld := score.LogDice(coocc, fA, fB)
				var mutDist float64
				if merged[j].DistN > 0 {
					mutDist = merged[j].DistSum / float64(merged[j].DistN)
				}
				heap.Push(h, candidate{
					lemma:   entries[kb].Lemma,
					pos:     entries[kb].DominantTag,
					coocc:   coocc,
					freq:    fB,
					logDice: ld,
					mutDist: mutDist,
				})
				if h.Len() > cfg.TopK {
					heap.Pop(h)
				}
			}
			j++
		}
		if int(a) < len(entries) && entries[a].Frequency >= cfg.MinFrequency && h.Len() > 0 {
			cols := make([]artifact.Collocation, h.Len())
			for k := len(cols) - 1; k >= 0; k-- {
				c := heap.Pop(h).(candidate)
				cols[k] = artifact.Collocation{
					Lemma:        c.lemma,
					Pos:          c.pos,
					Cooccurrence: c.coocc,
					Frequency:    c.freq,
					LogDice:      float32(c.logDice),
					MutualDist:   float32(c.mutDist),
				}
			}
			sort.SliceStable(cols, func(x, y int) bool {
				if cols[x].LogDice != cols[y].LogDice {
					return cols[x].LogDice > cols[y].LogDice
				}
				return cols[x].Lemma < cols[y].Lemma
			})
			out = append(out, artifact.CollocationEntry{
				Headword:          entries[a].Lemma,
				HeadwordFrequency: entries[a].Frequency,
				Collocations:      cols,
			})
			stats.HeadwordsWritten++
		} else if int(a) < len(entries) && entries[a].Frequency < cfg.MinFrequency {
			stats.HeadwordsSkippedLowFreq++
		}
		i = j
	}
	return out
}
