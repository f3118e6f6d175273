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
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// Write serializes entries (already in id order, as returned by
// Builder.Entries) to path using the C2 on-disk format: a fixed header
// followed by entries `u16 lemmaLen, bytes, u64 frequency, u8 posLen,
// bytes`.
func Write(path string, entries []Entry, totalTokens, totalSentences uint64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create lexicon file: %w", err)
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
	binary.LittleEndian.PutUint32(header[24:28], uint32(len(entries)))
	if _, err = w.Write(header); err != nil {
		return fmt.Errorf("failed to write lexicon header: %w", err)
	}

	for _, e := range entries {
		if err = writeEntry(w, e); err != nil {
			return err
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("failed to flush lexicon file: %w", err)
	}
	return nil
}

func writeEntry(w *bufio.Writer, e Entry) error {
	lemma := []byte(e.Lemma)
	if len(lemma) > 0xffff {
		return fmt.Errorf("lemma %q exceeds max length", e.Lemma)
	}
	pos := []byte(e.DominantTag)
	if len(pos) > 0xff {
		return fmt.Errorf("tag %q exceeds max length", e.DominantTag)
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
	binary.LittleEndian.PutUint64(u64[:], e.Frequency)
	if _, err := w.Write(u64[:]); err != nil {
		return err
	}
	if err := w.WriteByte(byte(len(pos))); err != nil {
		return err
	}
	if _, err := w.Write(pos); err != nil {
		return err
	}
	return nil
}
