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

package lexicon_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/czcorpus/corpuscoll/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderConcurrentObserve(t *testing.T) {
	b := lexicon.NewBuilder()
	var wg sync.WaitGroup
	lemmas := []string{"cat", "dog", "cat", "", "dog", "cat"}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, l := range lemmas {
				b.Observe(l, "NN")
			}
		}()
	}
	wg.Wait()

	entries := b.Entries()
	require.Len(t, entries, 3) // "", "cat", "dog"
	assert.Equal(t, uint64(0), entries[lexicon.EmptyLemmaID].Frequency)
	assert.Equal(t, b.TotalFrequency(), entries[1].Frequency+entries[2].Frequency)
}

func TestWriteOpenRoundTrip(t *testing.T) {
	b := lexicon.NewBuilder()
	for i := 0; i < 3; i++ {
		b.Observe("cat", "NN")
	}
	for i := 0; i < 7; i++ {
		b.Observe("dog", "NN")
	}
	b.Observe("dog", "VB")

	entries := b.Entries()
	path := filepath.Join(t.TempDir(), "lex.bin")
	require.NoError(t, lexicon.Write(path, entries, b.TotalFrequency(), 5))

	r, err := lexicon.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 3, r.EntryCount())
	assert.Equal(t, b.TotalFrequency(), r.TotalTokens())
	assert.Equal(t, uint64(5), r.TotalSentences())

	for id, e := range entries {
		lemma, ok := r.GetLemma(uint32(id))
		require.True(t, ok)
		assert.Equal(t, e.Lemma, lemma)

		freq, ok := r.GetFrequency(uint32(id))
		require.True(t, ok)
		assert.Equal(t, e.Frequency, freq)

		pos, ok := r.GetDominantPos(uint32(id))
		require.True(t, ok)
		assert.Equal(t, e.DominantTag, pos)
	}

	dogID := lemmaID(entries, "dog")
	pos, _ := r.GetDominantPos(dogID)
	assert.Equal(t, "NN", pos) // 7 NN vs 1 VB

	_, ok := r.GetLemma(999)
	assert.False(t, ok)
}

func lemmaID(entries []lexicon.Entry, lemma string) uint32 {
	for i, e := range entries {
		if e.Lemma == lemma {
			return uint32(i)
		}
	}
	return 0
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, writeGarbage(path))
	_, err := lexicon.Open(path)
	assert.ErrorIs(t, err, lexicon.ErrCorruptLexicon)
}

func writeGarbage(path string) error {
	return os.WriteFile(path, make([]byte, 40), 0o644)
}
