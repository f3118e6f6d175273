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

package termstats_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/czcorpus/corpuscoll/termstats"
	"github.com/czcorpus/corpuscoll/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZeros(path string, n int) error {
	return os.WriteFile(path, make([]byte, n), 0o644)
}

func TestBuilderAccumulates(t *testing.T) {
	b := termstats.NewBuilder()
	b.ObserveSentence(token.Sentence{Tokens: []token.Token{
		{Lemma: "cat", Tag: "NN"},
		{Lemma: "sleep", Tag: "VB"},
		{Lemma: "cat", Tag: "NN"}, // repeated within sentence -> docFreq once, totalFreq twice
	}})
	b.ObserveSentence(token.Sentence{Tokens: []token.Token{
		{Lemma: "cat", Tag: "NNS"},
		{Lemma: "", Tag: "X"},
	}})

	cat, ok := b.Get("cat")
	require.True(t, ok)
	assert.Equal(t, uint64(3), cat.TotalFrequency)
	assert.Equal(t, uint32(2), cat.DocumentFrequency)
	assert.Equal(t, uint64(2), cat.PosDistribution["NN"])
	assert.Equal(t, uint64(1), cat.PosDistribution["NNS"])

	_, ok = b.Get("")
	assert.False(t, ok) // empty lemma never tracked

	assert.Equal(t, uint64(4), b.TotalTokens()) // cat*3 + sleep*1, empty excluded
	assert.Equal(t, uint64(2), b.TotalSentences())
}

func TestWriteOpenRoundTripAndFrequencyOrder(t *testing.T) {
	b := termstats.NewBuilder()
	for i := 0; i < 10; i++ {
		b.ObserveSentence(token.Sentence{Tokens: []token.Token{{Lemma: "frequent", Tag: "NN"}}})
	}
	for i := 0; i < 3; i++ {
		b.ObserveSentence(token.Sentence{Tokens: []token.Token{{Lemma: "rare", Tag: "JJ"}}})
	}

	records := b.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "frequent", records[0].Lemma) // sorted descending by frequency

	path := filepath.Join(t.TempDir(), "stats.bin")
	require.NoError(t, termstats.Write(path, records, b.TotalTokens(), b.TotalSentences()))

	r, err := termstats.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 2, r.EntryCount())
	assert.Equal(t, b.TotalTokens(), r.TotalTokens())

	freq, ok := r.GetFrequency("frequent")
	require.True(t, ok)
	assert.Equal(t, uint64(10), freq)

	stats, ok := r.GetStatistics("rare")
	require.True(t, ok)
	assert.Equal(t, uint64(3), stats.TotalFrequency)
	assert.Equal(t, uint64(3), stats.PosDistribution["JJ"])

	_, ok = r.GetFrequency("unknown")
	assert.False(t, ok)

	top := r.GetLemmasByMinFrequency(5)
	assert.Equal(t, []string{"frequent"}, top)

	all := r.GetLemmasByMinFrequency(1)
	assert.ElementsMatch(t, []string{"frequent", "rare"}, all)
}

func TestOpenRejectsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, writeZeros(path, 40))
	_, err := termstats.Open(path)
	assert.ErrorIs(t, err, termstats.ErrCorruptStore)
}
