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

// Package build implements the single-pass collocations builder: a
// streaming, bounded-memory, parallel co-occurrence aggregator that
// shards pair counts, spills sorted runs to disk, k-way merges them, and
// reduces to a per-headword top-K collocations artifact.
package build

import "runtime"

// Config holds the builder's tunable parameters, each with the default
// documented in its contract. Config is plain data constructed explicitly
// by the caller (CLI flags or a test fixture) rather than global state.
type Config struct {
	// WindowSize is W: a co-occurrence is counted when the two tokens'
	// positions in the same sentence differ by >= 1 and <= W.
	WindowSize int
	// TopK is the maximum retained collocates per headword.
	TopK int
	// MinFrequency: headwords with corpus frequency below this are
	// skipped.
	MinFrequency uint64
	// MinCooccurrence: per-pair occurrences below this are dropped.
	MinCooccurrence uint32
	// Shards is the number of in-memory partitions for pair counts.
	Shards int
	// SpillThreshold is the max distinct pairs per shard before forcing a
	// spill to disk.
	SpillThreshold int
	// Threads is the Stage A worker pool size.
	Threads int
	// CheckpointEvery is the periodicity, in written headwords, of
	// offset-table checkpoints.
	CheckpointEvery int
	// Resume reuses existing partial output if present.
	Resume bool
	// WorkDir holds spill-run files and the resume offsets side-car; it
	// must be exclusively owned by one build (Build holds a lock file in it
	// for the duration of the run).
	WorkDir string
	// OutputPath is the final artifact's path.
	OutputPath string
}

// DefaultConfig returns a Config with every default from the contract.
func DefaultConfig() Config {
	return Config{
		WindowSize:      5,
		TopK:            100,
		MinFrequency:    10,
		MinCooccurrence: 2,
		Shards:          64,
		SpillThreshold:  2_000_000,
		Threads:         runtime.GOMAXPROCS(0),
		CheckpointEvery: 5_000,
		Resume:          false,
	}
}
