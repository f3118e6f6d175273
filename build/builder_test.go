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

package build_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/czcorpus/corpuscoll/build"
	"github.com/czcorpus/corpuscoll/token"
	"github.com/stretchr/testify/require"
)

func sent(id int64, lemmas ...string) token.Sentence {
	toks := make([]token.Token, len(lemmas))
	for i, l := range lemmas {
		toks[i] = token.Token{Position: i, Word: l, Lemma: l, Tag: "NN"}
	}
	return token.Sentence{ID: id, Tokens: toks}
}

func feed(sentences []token.Sentence) <-chan token.Sentence {
	ch := make(chan token.Sentence, len(sentences))
	for _, s := range sentences {
		ch <- s
	}
	close(ch)
	return ch
}

func baseConfig(t *testing.T) build.Config {
	cfg := build.DefaultConfig()
	cfg.Threads = 2
	cfg.Shards = 4
	cfg.WindowSize = 2
	cfg.TopK = 10
	cfg.MinFrequency = 1
	cfg.MinCooccurrence = 1
	cfg.WorkDir = t.TempDir()
	cfg.OutputPath = filepath.Join(cfg.WorkDir, "out.bin")
	return cfg
}

func TestBuildTinyCorpusRoundTrip(t *testing.T) {
	cfg := baseConfig(t)
	sentences := []token.Sentence{
		sent(1, "cat", "sit", "mat"),
		sent(2, "cat", "sit", "mat"),
		sent(3, "dog", "run", "park"),
	}
	stats, err := build.Build(context.Background(), cfg, feed(sentences))
	require.NoError(t, err)
	require.Greater(t, stats.HeadwordsWritten, int64(0))
	require.EqualValues(t, 3, stats.SentencesProcessed)

	r, err := artifact.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer r.Close()

	require.True(t, r.HasLemma("cat"))
	entry, ok := r.GetCollocations("cat")
	require.True(t, ok)
	require.NotEmpty(t, entry.Collocations)

	var foundSit bool
	for _, c := range entry.Collocations {
		if c.Lemma == "sit" {
			foundSit = true
			require.EqualValues(t, 2, c.Cooccurrence)
		}
	}
	require.True(t, foundSit)
}

func TestBuildEmptyCorpusProducesValidHeader(t *testing.T) {
	cfg := baseConfig(t)
	stats, err := build.Build(context.Background(), cfg, feed(nil))
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.HeadwordsWritten)

	r, err := artifact.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer r.Close()
	require.EqualValues(t, 0, r.EntryCount())
}

func TestBuildSingleTokenSentenceContributesNothing(t *testing.T) {
	cfg := baseConfig(t)
	stats, err := build.Build(context.Background(), cfg, feed([]token.Sentence{sent(1, "alone")}))
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.SentencesSkippedTooShort)
	require.EqualValues(t, 0, stats.SentencesProcessed)

	r, err := artifact.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer r.Close()
	require.False(t, r.HasLemma("alone"))
}

func TestBuildHeadwordBelowMinFrequencyDropped(t *testing.T) {
	cfg := baseConfig(t)
	cfg.MinFrequency = 5
	stats, err := build.Build(context.Background(), cfg, feed([]token.Sentence{
		sent(1, "rare", "common"),
	}))
	require.NoError(t, err)
	require.Greater(t, stats.HeadwordsSkippedLowFreq, int64(0))

	r, err := artifact.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer r.Close()
	require.False(t, r.HasLemma("rare"))
}

func TestBuildWindowSizeZeroEmitsNoPairs(t *testing.T) {
	cfg := baseConfig(t)
	cfg.WindowSize = 0
	stats, err := build.Build(context.Background(), cfg, feed([]token.Sentence{
		sent(1, "a", "b", "c"),
	}))
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.HeadwordsWritten)
}

func TestBuildExcludesSelfCollocation(t *testing.T) {
	cfg := baseConfig(t)
	cfg.WindowSize = 3
	stats, err := build.Build(context.Background(), cfg, feed([]token.Sentence{
		sent(1, "very", "very", "good"),
		sent(2, "had", "had", "fun"),
	}))
	require.NoError(t, err)
	require.Greater(t, stats.HeadwordsWritten, int64(0))

	r, err := artifact.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer r.Close()

	for _, lemma := range []string{"very", "had"} {
		entry, ok := r.GetCollocations(lemma)
		require.True(t, ok)
		for _, c := range entry.Collocations {
			require.NotEqual(t, lemma, c.Lemma, "headword must not collocate with itself")
		}
	}
}

func TestBuildMutualDistSurvivesSpill(t *testing.T) {
	cfg := baseConfig(t)
	cfg.WindowSize = 1
	cfg.Threads = 1
	cfg.Shards = 1
	cfg.SpillThreshold = 1
	sentences := []token.Sentence{
		sent(1, "cat", "sit"),
		sent(2, "dog", "run"),
		sent(3, "cat", "sit"),
	}
	_, err := build.Build(context.Background(), cfg, feed(sentences))
	require.NoError(t, err)

	r, err := artifact.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer r.Close()

	entry, ok := r.GetCollocations("cat")
	require.True(t, ok)
	var found bool
	for _, c := range entry.Collocations {
		if c.Lemma == "sit" {
			found = true
			require.EqualValues(t, 2, c.Cooccurrence)
			require.InDelta(t, 1.0, c.MutualDist, 1e-6)
		}
	}
	require.True(t, found)
}

func TestBuildConcurrentRunRejected(t *testing.T) {
	cfg := baseConfig(t)
	require.NoError(t, os.MkdirAll(cfg.WorkDir, 0o755))
	lockPath := filepath.Join(cfg.WorkDir, ".build.lock")
	f, err := os.Create(lockPath)
	require.NoError(t, err)
	defer f.Close()

	_, err = build.Build(context.Background(), cfg, feed(nil))
	require.ErrorIs(t, err, build.ErrAlreadyInProgress)
}
