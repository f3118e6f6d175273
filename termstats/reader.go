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

package termstats

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/edsrzf/mmap-go"
)

type recordLoc struct {
	lemma          string
	totalFrequency uint64
	documentFreq   uint32
	tagOff         int
	tagCount       uint16
}

// Reader serves lemma-keyed lookups over a memory-mapped term statistics
// file. getStatistics/getFrequency are O(1) via an in-memory hash built
// once at Open; getLemmasByMinFrequency is a binary-search cutoff over the
// descending-frequency-sorted record table.
type Reader struct {
	f    *os.File
	data mmap.MMap

	totalTokens    uint64
	totalSentences uint64

	records []recordLoc
	byLemma map[string]int
}

// Open memory-maps path and indexes it by lemma.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open term statistics file: %w", err)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap term statistics file: %w", err)
	}
	r := &Reader{f: f, data: data}
	if err := r.parse(); err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) parse() error {
	if len(r.data) < headerSize {
		return fmt.Errorf("%w: truncated header", ErrCorruptStore)
	}
	if binary.LittleEndian.Uint32(r.data[0:4]) != magic {
		return fmt.Errorf("%w: bad magic", ErrCorruptStore)
	}
	if binary.LittleEndian.Uint32(r.data[4:8]) != formatVers {
		return fmt.Errorf("%w: unsupported version", ErrCorruptStore)
	}
	r.totalTokens = binary.LittleEndian.Uint64(r.data[8:16])
	r.totalSentences = binary.LittleEndian.Uint64(r.data[16:24])
	entryCount := int(binary.LittleEndian.Uint32(r.data[24:28]))

	r.records = make([]recordLoc, entryCount)
	r.byLemma = make(map[string]int, entryCount)

	pos := headerSize
	for i := 0; i < entryCount; i++ {
		rec, next, err := r.parseRecord(pos, i)
		if err != nil {
			return err
		}
		r.records[i] = rec
		r.byLemma[rec.lemma] = i
		pos = next
	}
	return nil
}

func (r *Reader) parseRecord(pos, idx int) (recordLoc, int, error) {
	d := r.data
	if pos+2 > len(d) {
		return recordLoc{}, 0, fmt.Errorf("%w: truncated record %d", ErrCorruptStore, idx)
	}
	ll := int(binary.LittleEndian.Uint16(d[pos : pos+2]))
	pos += 2
	if pos+ll > len(d) {
		return recordLoc{}, 0, fmt.Errorf("%w: truncated record %d", ErrCorruptStore, idx)
	}
	lemma := string(d[pos : pos+ll])
	pos += ll

	if pos+8+4+2 > len(d) {
		return recordLoc{}, 0, fmt.Errorf("%w: truncated record %d", ErrCorruptStore, idx)
	}
	freq := binary.LittleEndian.Uint64(d[pos : pos+8])
	pos += 8
	docFreq := binary.LittleEndian.Uint32(d[pos : pos+4])
	pos += 4
	tagCount := binary.LittleEndian.Uint16(d[pos : pos+2])
	pos += 2

	tagOff := pos
	for t := 0; t < int(tagCount); t++ {
		if pos+1 > len(d) {
			return recordLoc{}, 0, fmt.Errorf("%w: truncated record %d", ErrCorruptStore, idx)
		}
		tl := int(d[pos])
		pos += 1 + tl
		if pos+8 > len(d) {
			return recordLoc{}, 0, fmt.Errorf("%w: truncated record %d", ErrCorruptStore, idx)
		}
		pos += 8
	}

	return recordLoc{
		lemma:          lemma,
		totalFrequency: freq,
		documentFreq:   docFreq,
		tagOff:         tagOff,
		tagCount:       tagCount,
	}, pos, nil
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

// TotalTokens returns the corpus-wide token total recorded at build time.
func (r *Reader) TotalTokens() uint64 { return r.totalTokens }

// TotalSentences returns the corpus-wide sentence count recorded at build time.
func (r *Reader) TotalSentences() uint64 { return r.totalSentences }

// EntryCount returns the number of distinct lemmas in the store.
func (r *Reader) EntryCount() int { return len(r.records) }

// GetFrequency returns the total corpus frequency of lemma, or 0 and false
// if unseen.
func (r *Reader) GetFrequency(lemma string) (uint64, bool) {
	idx, ok := r.byLemma[lemma]
	if !ok {
		return 0, false
	}
	return r.records[idx].totalFrequency, true
}

// GetStatistics decodes and returns the full TermStatistics for lemma.
func (r *Reader) GetStatistics(lemma string) (TermStatistics, bool) {
	idx, ok := r.byLemma[lemma]
	if !ok {
		return TermStatistics{}, false
	}
	return r.decode(r.records[idx]), true
}

func (r *Reader) decode(rec recordLoc) TermStatistics {
	dist := make(map[string]uint64, rec.tagCount)
	pos := rec.tagOff
	for t := 0; t < int(rec.tagCount); t++ {
		tl := int(r.data[pos])
		pos++
		tag := string(r.data[pos : pos+tl])
		pos += tl
		cnt := binary.LittleEndian.Uint64(r.data[pos : pos+8])
		pos += 8
		dist[tag] = cnt
	}
	return TermStatistics{
		Lemma:             rec.lemma,
		TotalFrequency:    rec.totalFrequency,
		DocumentFrequency: rec.documentFreq,
		PosDistribution:   dist,
	}
}

// GetLemmasByMinFrequency returns every lemma with TotalFrequency >=
// threshold. Records are stored in descending-frequency order, so this is
// a binary-search cutoff followed by a slice copy, never a full sort.
func (r *Reader) GetLemmasByMinFrequency(threshold uint64) []string {
	cutoff := sort.Search(len(r.records), func(i int) bool {
		return r.records[i].totalFrequency < threshold
	})
	out := make([]string, cutoff)
	for i := 0; i < cutoff; i++ {
		out[i] = r.records[i].lemma
	}
	return out
}
