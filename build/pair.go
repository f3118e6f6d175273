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

// packPair combines (headword lemma id a, collocate lemma id b) into the
// u64 key `(a << 32) | b` the shard/spill/merge pipeline sorts and groups
// on: the high 32 bits are always the headword id, so a key-ordered scan
// groups all pairs of one headword contiguously.
func packPair(a, b uint32) uint64 {
	return uint64(a)<<32 | uint64(b)
}

func unpackPair(key uint64) (a, b uint32) {
	return uint32(key >> 32), uint32(key)
}

// shardOf returns the shard index for a headword id, `a mod shards`.
func shardOf(a uint32, shards int) int {
	return int(a) % shards
}
