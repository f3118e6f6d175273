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

package artifact

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Reader memory-maps a collocations artifact and resolves headword
// lookups in O(1) via an in-memory offset hash built once at Open. Reads
// are thread-safe and lock-free after construction; the reader never
// allocates per lookup beyond the returned CollocationEntry.
type Reader struct {
	f      *os.File
	data   mmap.MMap
	header Header

	offsets map[string]int64
	order   []string // headwords in file (offset-table) order, for IterateAll
}

// Open memory-maps path, validates the header, and loads the offset table.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap artifact: %w", err)
	}
	r := &Reader{f: f, data: data}
	if err := r.init(); err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) init() error {
	h, err := DecodeHeader(r.data)
	if err != nil {
		return err
	}
	r.header = h

	start := h.OffsetTableStart
	end := start + h.OffsetTableSize
	if end > uint64(len(r.data)) {
		return fmt.Errorf("%w: offset table out of bounds", ErrCorruptArtifact)
	}
	table := r.data[start:end]

	r.offsets = make(map[string]int64, h.EntryCount)
	r.order = make([]string, 0, h.EntryCount)
	pos := 0
	for i := uint32(0); i < h.EntryCount; i++ {
		rec, n, err := DecodeOffsetRecord(table[pos:])
		if err != nil {
			return err
		}
		r.offsets[rec.Headword] = rec.FileOffset
		r.order = append(r.order, rec.Headword)
		pos += n
	}
	return nil
}

// Close unmaps the file. Safe to call on a nil *Reader.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}
	if err := r.data.Unmap(); err != nil {
		return err
	}
	return r.f.Close()
}

// EntryCount returns the number of headword entries in the artifact.
func (r *Reader) EntryCount() int { return int(r.header.EntryCount) }

// GetTopK returns the build's configured topK.
func (r *Reader) GetTopK() int { return int(r.header.TopK) }

// GetWindowSize returns the build's configured window size.
func (r *Reader) GetWindowSize() int { return int(r.header.WindowSize) }

// TotalTokens returns the corpus-wide token total recorded at build time.
func (r *Reader) TotalTokens() uint64 { return r.header.TotalTokens }

// HasLemma reports whether the artifact has a precomputed entry for lemma.
func (r *Reader) HasLemma(lemma string) bool {
	_, ok := r.offsets[lemma]
	return ok
}

// GetCollocations returns the precomputed CollocationEntry for lemma, or
// (zero, false) if absent.
func (r *Reader) GetCollocations(lemma string) (CollocationEntry, bool) {
	off, ok := r.offsets[lemma]
	if !ok {
		return CollocationEntry{}, false
	}
	if off < 0 || int64(len(r.data)) <= off {
		return CollocationEntry{}, false
	}
	entry, _, err := DecodeEntry(r.data[off:])
	if err != nil {
		return CollocationEntry{}, false
	}
	return entry, true
}

// IterateAll calls fn once per entry, in file (offset-table) order,
// stopping early if fn returns false.
func (r *Reader) IterateAll(fn func(CollocationEntry) bool) error {
	for _, hw := range r.order {
		entry, ok := r.GetCollocations(hw)
		if !ok {
			return fmt.Errorf("%w: dangling offset for %q", ErrCorruptArtifact, hw)
		}
		if !fn(entry) {
			return nil
		}
	}
	return nil
}
