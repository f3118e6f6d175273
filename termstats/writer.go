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
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"sort"
)

// Write serializes records (already sorted by descending TotalFrequency)
// to path using the C3 on-disk format.
func Write(path string, records []TermStatistics, totalTokens, totalSentences uint64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create term statistics file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], formatVers)
	binary.LittleEndian.PutUint64(header[8:16], totalTokens)
	binary.LittleEndian.PutUint64(header[16:24], totalSentences)
	binary.LittleEndian.PutUint32(header[24:28], uint32(len(records)))
	if _, err = w.Write(header); err != nil {
		return fmt.Errorf("failed to write term statistics header: %w", err)
	}

	for _, r := range records {
		if err = writeRecord(w, r); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeRecord(w *bufio.Writer, r TermStatistics) error {
	lemma := []byte(r.Lemma)
	if len(lemma) > 0xffff {
		return fmt.Errorf("lemma %q exceeds max length", r.Lemma)
	}
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], uint16(len(lemma)))
	if _, err := w.Write(u16[:]); err != nil {
		return err
	}
	if _, err := w.Write(lemma); err != nil {
		return err
	}
	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], r.TotalFrequency)
	if _, err := w.Write(u64[:]); err != nil {
		return err
	}
	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], r.DocumentFrequency)
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}

	tags := make([]string, 0, len(r.PosDistribution))
	for t := range r.PosDistribution {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	binary.LittleEndian.PutUint16(u16[:], uint16(len(tags)))
	if _, err := w.Write(u16[:]); err != nil {
		return err
	}
	for _, t := range tags {
		tb := []byte(t)
		if len(tb) > 0xff {
			return fmt.Errorf("tag %q exceeds max length", t)
		}
		if err := w.WriteByte(byte(len(tb))); err != nil {
			return err
		}
		if _, err := w.Write(tb); err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(u64[:], r.PosDistribution[t])
		if _, err := w.Write(u64[:]); err != nil {
			return err
		}
	}
	return nil
}
