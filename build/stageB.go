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
	"fmt"

	"github.com/czcorpus/corpuscoll/artifact"
)

// pairSource yields ascending-key pair records from one spilled run or
// from a shard's residual in-memory entries.
type pairSource interface {
	next() (artifact.PairRecord, bool, error)
	close() error
}

type runSource struct {
	r *artifact.SpillRunReader
}

func (s *runSource) next() (artifact.PairRecord, bool, error) { return s.r.Next() }
func (s *runSource) close() error                             { return s.r.Close() }

type sliceSource struct {
	recs []artifact.PairRecord
	pos  int
}

func (s *sliceSource) next() (artifact.PairRecord, bool, error) {
	if s.pos >= len(s.recs) {
		return artifact.PairRecord{}, false, nil
	}
	rec := s.recs[s.pos]
	s.pos++
	return rec, true, nil
}
func (s *sliceSource) close() error { return nil }

// heapItem holds one source's current head record, ready to be ordered
// in the k-way merge's min-heap by key.
type heapItem struct {
	rec    artifact.PairRecord
	srcIdx int
}

type mergeHeap []heapItem

func (h mergeHeap) Len() int            { return len(h) }
func (h mergeHeap) Less(i, j int) bool  { return h[i].rec.Key < h[j].rec.Key }
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergedShard k-way merges every spilled run plus the residual in-memory
// map of one shard into a single ascending-key stream, summing counts
// when the same pair key recurs across runs (it spans more than one
// spill epoch), and drops pairs whose summed count falls below
// minCooccurrence.
func mergedShard(s *shard, minCooccurrence uint32) ([]artifact.PairRecord, error) {
	sources := make([]pairSource, 0, len(s.runFiles())+1)
	for _, path := range s.runFiles() {
		r, err := artifact.OpenSpillRun(path)
		if err != nil {
			return nil, fmt.Errorf("shard %d: opening run %s: %w", s.idx, path, err)
		}
		sources = append(sources, &runSource{r: r})
	}
	sources = append(sources, &sliceSource{recs: s.residualSorted()})
	defer func() {
		for _, src := range sources {
			_ = src.close()
		}
	}()

	h := make(mergeHeap, 0, len(sources))
	for i, src := range sources {
		rec, ok, err := src.next()
		if err != nil {
			return nil, err
		}
		if ok {
			heap.Push(&h, heapItem{rec: rec, srcIdx: i})
		}
	}

	var out []artifact.PairRecord
	for h.Len() > 0 {
		top := heap.Pop(&h).(heapItem)
		key := top.rec.Key
		total := int64(top.rec.Count)
		distSum := top.rec.DistSum
		distN := top.rec.DistN

		advance := func(idx int, rec artifact.PairRecord, ok bool, err error) error {
			if err != nil {
				return err
			}
			if ok {
				heap.Push(&h, heapItem{rec: rec, srcIdx: idx})
			}
			return nil
		}
		rec, ok, err := sources[top.srcIdx].next()
		if err := advance(top.srcIdx, rec, ok, err); err != nil {
			return nil, err
		}

		for h.Len() > 0 && h[0].rec.Key == key {
			next := heap.Pop(&h).(heapItem)
			total += int64(next.rec.Count)
			distSum += next.rec.DistSum
			distN += next.rec.DistN
			rec, ok, err := sources[next.srcIdx].next()
			if err := advance(next.srcIdx, rec, ok, err); err != nil {
				return nil, err
			}
		}

		if uint32(total) >= minCooccurrence {
			out = append(out, artifact.PairRecord{Key: key, Count: int32(total), DistSum: distSum, DistN: distN})
		}
	}
	return out, nil
}
