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

package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZeros(path string, n int) error {
	return os.WriteFile(path, make([]byte, n), 0o644)
}

func sampleEntry() artifact.CollocationEntry {
	return artifact.CollocationEntry{
		Headword:          "a",
		HeadwordFrequency: 1000,
		Collocations: []artifact.Collocation{
			{Lemma: "b", Pos: "NN", Cooccurrence: 50, Frequency: 2000, LogDice: 9.37, MutualDist: 1.5},
			{Lemma: "c", Pos: "VB", Cooccurrence: 10, Frequency: 500, LogDice: 6.1, MutualDist: -2.0},
		},
	}
}

func TestEntryRoundTrip(t *testing.T) {
	e := sampleEntry()
	buf, err := artifact.EncodeEntry(e)
	require.NoError(t, err)
	decoded, n, err := artifact.DecodeEntry(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, e, decoded)
}

func TestWriterReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.bin")
	w, err := artifact.NewWriter(path)
	require.NoError(t, err)

	entries := []artifact.CollocationEntry{sampleEntry(), {Headword: "z", HeadwordFrequency: 10}}
	var offsets []artifact.OffsetRecord
	for _, e := range entries {
		off, err := w.AppendEntry(e)
		require.NoError(t, err)
		offsets = append(offsets, artifact.OffsetRecord{Headword: e.Headword, FileOffset: off})
	}
	require.NoError(t, w.Finalize(5, 100, 123456, offsets))

	r, err := artifact.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 2, r.EntryCount())
	assert.Equal(t, 100, r.GetTopK())
	assert.Equal(t, 5, r.GetWindowSize())
	assert.Equal(t, uint64(123456), r.TotalTokens())

	assert.True(t, r.HasLemma("a"))
	got, ok := r.GetCollocations("a")
	require.True(t, ok)
	assert.Equal(t, sampleEntry(), got)

	assert.False(t, r.HasLemma("missing"))
	_, ok = r.GetCollocations("missing")
	assert.False(t, ok)

	var seen []string
	require.NoError(t, r.IterateAll(func(e artifact.CollocationEntry) bool {
		seen = append(seen, e.Headword)
		return true
	}))
	assert.ElementsMatch(t, []string{"a", "z"}, seen)
}

func TestEmptyArtifactHasValidHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	w, err := artifact.NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Finalize(5, 100, 0, nil))

	r, err := artifact.Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 0, r.EntryCount())
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, writeZeros(path, 128))
	_, err := artifact.Open(path)
	assert.ErrorIs(t, err, artifact.ErrCorruptArtifact)
}

func TestSpillRunRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.bin")
	records := []artifact.PairRecord{{Key: 1, Count: 3}, {Key: 2, Count: 7}, {Key: 100, Count: 1}}
	require.NoError(t, artifact.WriteSpillRun(path, records))

	r, err := artifact.OpenSpillRun(path)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, 3, r.RecordCount)

	var got []artifact.PairRecord
	for {
		rec, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, rec)
	}
	assert.Equal(t, records, got)
}
