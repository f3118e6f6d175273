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
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/czcorpus/corpuscoll/artifact"
)

// shard is an in-memory partition of the pair-count table keyed by a
// function of the headword lemma id. It holds a hash map (u64 packed
// pair) -> u32 count, single-writer per flush under a short critical
// section, spilling a sorted run to disk whenever it grows past
// spillThreshold.
//
// Average signed distance is tracked alongside counts as a running sum and
// sample count per pair. Both travel with the pair's count through a spill
// (recorded in the same PairRecord) and are re-summed across spill epochs
// during Stage B's merge, so the average reported in the final artifact
// covers the whole corpus, not just a pair's most recent epoch.
type shard struct {
	mu      sync.Mutex
	counts  map[uint64]uint32
	distSum map[uint64]float64
	distN   map[uint64]uint32

	idx            int
	workDir        string
	spillThreshold int
	spillSeq       int
	runPaths       []string
}

func newShard(idx int, workDir string, spillThreshold int) *shard {
	return &shard{
		counts:         make(map[uint64]uint32),
		distSum:        make(map[uint64]float64),
		distN:          make(map[uint64]uint32),
		idx:            idx,
		workDir:        workDir,
		spillThreshold: spillThreshold,
	}
}

// Add increments the count for key by one and folds dist into its running
// average, spilling the shard to disk first if it is already at capacity.
func (s *shard) Add(key uint64, dist float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.counts) >= s.spillThreshold {
		if _, already := s.counts[key]; !already {
			if err := s.spillLocked(); err != nil {
				return err
			}
		}
	}
	s.counts[key]++
	s.distSum[key] += dist
	s.distN[key]++
	return nil
}

func (s *shard) spillLocked() error {
	keys := make([]uint64, 0, len(s.counts))
	for k := range s.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	records := make([]artifact.PairRecord, len(keys))
	for i, k := range keys {
		records[i] = artifact.PairRecord{
			Key:     int64(k),
			Count:   int32(s.counts[k]),
			DistSum: s.distSum[k],
			DistN:   s.distN[k],
		}
	}

	path := filepath.Join(s.workDir, fmt.Sprintf("shard-%04d-run-%04d.bin", s.idx, s.spillSeq))
	if err := artifact.WriteSpillRun(path, records); err != nil {
		return fmt.Errorf("shard %d: %w", s.idx, err)
	}
	s.runPaths = append(s.runPaths, path)
	s.spillSeq++
	s.counts = make(map[uint64]uint32)
	s.distSum = make(map[uint64]float64)
	s.distN = make(map[uint64]uint32)
	return nil
}

// ForceSpillIfNonEmpty flushes any residual in-memory entries to disk so
// that Stage B only ever merges run files, never a live map.
func (s *shard) ForceSpillIfNonEmpty() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.counts) == 0 {
		return nil
	}
	return s.spillLocked()
}

// residualSorted returns the shard's current in-memory entries as a
// sorted run, the "residual map treated as one more sorted run" step of
// Stage B.
func (s *shard) residualSorted() []artifact.PairRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]uint64, 0, len(s.counts))
	for k := range s.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]artifact.PairRecord, len(keys))
	for i, k := range keys {
		out[i] = artifact.PairRecord{
			Key:     int64(k),
			Count:   int32(s.counts[k]),
			DistSum: s.distSum[k],
			DistN:   s.distN[k],
		}
	}
	return out
}

func (s *shard) runFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.runPaths...)
}
