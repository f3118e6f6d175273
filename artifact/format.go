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

// Package artifact defines the collocations-artifact binary format (the
// output of the single-pass builder) and a memory-mapped, zero-copy reader
// over it.
package artifact

import "errors"

const (
	// Magic is the artifact file's magic number: the ASCII letters "COLL"
	// taken most-significant byte first, stored little-endian.
	Magic uint32 = 0x434f4c4c
	// SpillMagic identifies an intermediate spill-run file: the ASCII
	// letters "PAIR" taken most-significant byte first, stored
	// little-endian.
	SpillMagic uint32 = 0x50414952

	formatVersion uint32 = 1

	// HeaderSize is the fixed 64-byte header preceding the entry table;
	// bytes [44:64) are reserved and always zero.
	HeaderSize = 64
)

// Header is the fixed artifact header.
type Header struct {
	Magic             uint32
	Version           uint32
	EntryCount        uint32
	WindowSize        uint32
	TopK              uint32
	TotalTokens       uint64
	OffsetTableStart  uint64
	OffsetTableSize   uint64
}

// Collocation is one scored collocate of a headword.
type Collocation struct {
	Lemma        string
	Pos          string
	Cooccurrence uint64
	Frequency    uint64
	LogDice      float32
	// MutualDist is the running average signed token distance between the
	// headword and this collocate (negative = collocate precedes the
	// headword), a supplemented field beyond the core byte table.
	MutualDist float32
}

// CollocationEntry is the full precomputed record for one headword.
type CollocationEntry struct {
	Headword          string
	HeadwordFrequency uint64
	Collocations      []Collocation
}

// ErrCorruptArtifact is returned when the artifact's header or an entry
// fails validation or decoding.
var ErrCorruptArtifact = errors.New("corrupt collocations artifact")

// ErrCorruptSpillRun is returned when a spill-run file fails header
// validation or decoding.
var ErrCorruptSpillRun = errors.New("corrupt spill run file")
