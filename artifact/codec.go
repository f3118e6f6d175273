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
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEntry serializes a CollocationEntry: u16 headwordLen,
// bytes, u64 headwordFrequency, u16 collocateCount, then per collocate
// u8 lemmaLen, bytes, u8 posLen, bytes, u64 cooccurrence, u64 frequency,
// f32 logDice, f32 mutualDist.
func EncodeEntry(e CollocationEntry) ([]byte, error) {
	hw := []byte(e.Headword)
	if len(hw) > 0xffff {
		return nil, fmt.Errorf("headword %q exceeds max length", e.Headword)
	}
	if len(e.Collocations) > 0xffff {
		return nil, fmt.Errorf("headword %q has too many collocates", e.Headword)
	}
	buf := make([]byte, 0, 16+16*len(e.Collocations))
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(len(hw)))
	buf = append(buf, u16[:]...)
	buf = append(buf, hw...)

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], e.HeadwordFrequency)
	buf = append(buf, u64[:]...)

	binary.LittleEndian.PutUint16(u16[:], uint16(len(e.Collocations)))
	buf = append(buf, u16[:]...)

	for _, c := range e.Collocations {
		lemma := []byte(c.Lemma)
		pos := []byte(c.Pos)
		if len(lemma) > 0xff || len(pos) > 0xff {
			return nil, fmt.Errorf("collocate %q/%q exceeds max field length", c.Lemma, c.Pos)
		}
		buf = append(buf, byte(len(lemma)))
		buf = append(buf, lemma...)
		buf = append(buf, byte(len(pos)))
		buf = append(buf, pos...)

		binary.LittleEndian.PutUint64(u64[:], c.Cooccurrence)
		buf = append(buf, u64[:]...)
		binary.LittleEndian.PutUint64(u64[:], c.Frequency)
		buf = append(buf, u64[:]...)

		var u32 [4]byte
		binary.LittleEndian.PutUint32(u32[:], math.Float32bits(c.LogDice))
		buf = append(buf, u32[:]...)
		binary.LittleEndian.PutUint32(u32[:], math.Float32bits(c.MutualDist))
		buf = append(buf, u32[:]...)
	}
	return buf, nil
}

// DecodeEntry decodes one CollocationEntry starting at data[0], returning
// the number of bytes consumed.
func DecodeEntry(data []byte) (CollocationEntry, int, error) {
	var e CollocationEntry
	pos := 0
	if pos+2 > len(data) {
		return e, 0, fmt.Errorf("%w: truncated entry header", ErrCorruptArtifact)
	}
	hwLen := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
	pos += 2
	if pos+hwLen > len(data) {
		return e, 0, fmt.Errorf("%w: truncated headword", ErrCorruptArtifact)
	}
	e.Headword = string(data[pos : pos+hwLen])
	pos += hwLen

	if pos+8+2 > len(data) {
		return e, 0, fmt.Errorf("%w: truncated entry header", ErrCorruptArtifact)
	}
	e.HeadwordFrequency = binary.LittleEndian.Uint64(data[pos : pos+8])
	pos += 8
	collocateCount := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
	pos += 2

	e.Collocations = make([]Collocation, collocateCount)
	for i := 0; i < collocateCount; i++ {
		c, n, err := decodeCollocation(data[pos:])
		if err != nil {
			return e, 0, err
		}
		e.Collocations[i] = c
		pos += n
	}
	return e, pos, nil
}

func decodeCollocation(data []byte) (Collocation, int, error) {
	var c Collocation
	pos := 0
	if pos+1 > len(data) {
		return c, 0, fmt.Errorf("%w: truncated collocation", ErrCorruptArtifact)
	}
	ll := int(data[pos])
	pos++
	if pos+ll > len(data) {
		return c, 0, fmt.Errorf("%w: truncated collocation lemma", ErrCorruptArtifact)
	}
	c.Lemma = string(data[pos : pos+ll])
	pos += ll

	if pos+1 > len(data) {
		return c, 0, fmt.Errorf("%w: truncated collocation", ErrCorruptArtifact)
	}
	pl := int(data[pos])
	pos++
	if pos+pl > len(data) {
		return c, 0, fmt.Errorf("%w: truncated collocation pos", ErrCorruptArtifact)
	}
	c.Pos = string(data[pos : pos+pl])
	pos += pl

	if pos+8+8+4+4 > len(data) {
		return c, 0, fmt.Errorf("%w: truncated collocation tail", ErrCorruptArtifact)
	}
	c.Cooccurrence = binary.LittleEndian.Uint64(data[pos : pos+8])
	pos += 8
	c.Frequency = binary.LittleEndian.Uint64(data[pos : pos+8])
	pos += 8
	c.LogDice = math.Float32frombits(binary.LittleEndian.Uint32(data[pos : pos+4]))
	pos += 4
	c.MutualDist = math.Float32frombits(binary.LittleEndian.Uint32(data[pos : pos+4]))
	pos += 4
	return c, pos, nil
}

// OffsetRecord is one entry of the artifact's offset table: `u16
// headwordLen, bytes, i64 entryFileOffset`.
type OffsetRecord struct {
	Headword   string
	FileOffset int64
}

// EncodeOffsetRecord serializes one offset-table record.
func EncodeOffsetRecord(o OffsetRecord) ([]byte, error) {
	hw := []byte(o.Headword)
	if len(hw) > 0xffff {
		return nil, fmt.Errorf("headword %q exceeds max length", o.Headword)
	}
	buf := make([]byte, 0, 2+len(hw)+8)
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(len(hw)))
	buf = append(buf, u16[:]...)
	buf = append(buf, hw...)
	var i64 [8]byte
	binary.LittleEndian.PutUint64(i64[:], uint64(o.FileOffset))
	buf = append(buf, i64[:]...)
	return buf, nil
}

// DecodeOffsetRecord decodes one offset-table record from data[0],
// returning the number of bytes consumed.
func DecodeOffsetRecord(data []byte) (OffsetRecord, int, error) {
	var o OffsetRecord
	if len(data) < 2 {
		return o, 0, fmt.Errorf("%w: truncated offset record", ErrCorruptArtifact)
	}
	hwLen := int(binary.LittleEndian.Uint16(data[0:2]))
	pos := 2
	if pos+hwLen+8 > len(data) {
		return o, 0, fmt.Errorf("%w: truncated offset record", ErrCorruptArtifact)
	}
	o.Headword = string(data[pos : pos+hwLen])
	pos += hwLen
	o.FileOffset = int64(binary.LittleEndian.Uint64(data[pos : pos+8]))
	pos += 8
	return o, pos, nil
}
