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

package lexicon

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Reader serves O(1) lookups over a memory-mapped lexicon file. The reader
// owns the underlying map and must be closed deterministically.
type Reader struct {
	f    *os.File
	data mmap.MMap

	totalTokens    uint64
	totalSentences uint64
	entryCount     uint32

	freq      []uint64
	lemmaOff  []uint32
	lemmaLen  []uint16
	posOff    []uint32
	posLen    []uint8
}

// Open memory-maps path and builds the reader's fixed-size offset arrays in
// a single pass, per the C2 contract.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon file: %w", err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap lexicon file: %w", err)
	}
	r := &Reader{f: f, data: data}
	if err := r.parseHeader(); err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	if err := r.buildOffsets(); err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) parseHeader() error {
	if len(r.data) < headerSize {
		return fmt.Errorf("%w: truncated header", ErrCorruptLexicon)
	}
	if binary.LittleEndian.Uint32(r.data[0:4]) != magic {
		return fmt.Errorf("%w: bad magic", ErrCorruptLexicon)
	}
	if binary.LittleEndian.Uint32(r.data[4:8]) != formatVers {
		return fmt.Errorf("%w: unsupported version", ErrCorruptLexicon)
	}
	r.totalTokens = binary.LittleEndian.Uint64(r.data[8:16])
	r.totalSentences = binary.LittleEndian.Uint64(r.data[16:24])
	r.entryCount = binary.LittleEndian.Uint32(r.data[24:28])
	return nil
}

func (r *Reader) buildOffsets() error {
	n := int(r.entryCount)
	r.freq = make([]uint64, n)
	r.lemmaOff = make([]uint32, n)
	r.lemmaLen = make([]uint16, n)
	r.posOff = make([]uint32, n)
	r.posLen = make([]uint8, n)

	pos := headerSize
	for i := 0; i < n; i++ {
		if pos+2 > len(r.data) {
			return fmt.Errorf("%w: truncated entry %d", ErrCorruptLexicon, i)
		}
		ll := binary.LittleEndian.Uint16(r.data[pos : pos+2])
		pos += 2
		r.lemmaLen[i] = ll
		r.lemmaOff[i] = uint32(pos)
		pos += int(ll)
		if pos+8 > len(r.data) {
			return fmt.Errorf("%w: truncated entry %d", ErrCorruptLexicon, i)
		}
		r.freq[i] = binary.LittleEndian.Uint64(r.data[pos : pos+8])
		pos += 8
		if pos+1 > len(r.data) {
			return fmt.Errorf("%w: truncated entry %d", ErrCorruptLexicon, i)
		}
		pl := r.data[pos]
		pos++
		r.posLen[i] = pl
		r.posOff[i] = uint32(pos)
		pos += int(pl)
		if pos > len(r.data) {
			return fmt.Errorf("%w: truncated entry %d", ErrCorruptLexicon, i)
		}
	}
	return nil
}

// Close unmaps the file and releases the file handle. Safe to call on a
// nil *Reader.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}
	if err := r.data.Unmap(); err != nil {
		return err
	}
	return r.f.Close()
}

// EntryCount returns N, the number of distinct lemmas in this build.
func (r *Reader) EntryCount() int { return int(r.entryCount) }

// TotalTokens returns the header's totalTokens field.
func (r *Reader) TotalTokens() uint64 { return r.totalTokens }

// TotalSentences returns the header's totalSentences field.
func (r *Reader) TotalSentences() uint64 { return r.totalSentences }

// GetLemma returns the lemma string for id, or "" and false if id is out of
// range.
func (r *Reader) GetLemma(id uint32) (string, bool) {
	if int(id) >= len(r.lemmaOff) {
		return "", false
	}
	off := r.lemmaOff[id]
	ln := r.lemmaLen[id]
	return string(r.data[off : off+uint32(ln)]), true
}

// GetFrequency returns the total corpus frequency for id.
func (r *Reader) GetFrequency(id uint32) (uint64, bool) {
	if int(id) >= len(r.freq) {
		return 0, false
	}
	return r.freq[id], true
}

// GetDominantPos returns the most frequent tag observed for id.
func (r *Reader) GetDominantPos(id uint32) (string, bool) {
	if int(id) >= len(r.posOff) {
		return "", false
	}
	off := r.posOff[id]
	ln := r.posLen[id]
	return string(r.data[off : off+uint32(ln)]), true
}
