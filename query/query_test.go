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

package query_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/czcorpus/corpuscoll/query"
	"github.com/czcorpus/corpuscoll/relation"
	"github.com/czcorpus/corpuscoll/spanengine"
	"github.com/czcorpus/corpuscoll/termstats"
	"github.com/czcorpus/corpuscoll/token"
	"github.com/stretchr/testify/require"
)

func buildArtifactFixture(t *testing.T) *artifact.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colls.bin")
	w, err := artifact.NewWriter(path)
	require.NoError(t, err)

	off, err := w.AppendEntry(artifact.CollocationEntry{
		Headword:          "team",
		HeadwordFrequency: 1000,
		Collocations: []artifact.Collocation{
			{Lemma: "win", Pos: "VERB", Cooccurrence: 50, Frequency: 2000, LogDice: 9.0},
			{Lemma: "lose", Pos: "VERB", Cooccurrence: 2, Frequency: 500, LogDice: 3.0},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(artifact.HeaderSize), off)

	require.NoError(t, w.Finalize(5, 10, 1_000_000, []artifact.OffsetRecord{
		{Headword: "team", FileOffset: off},
	}))

	r, err := artifact.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestDispatchArtifactFastPath(t *testing.T) {
	d := &query.Dispatcher{Artifact: buildArtifactFixture(t)}
	res, err := d.GetCollocations(context.Background(), "team", relation.Window, query.WithMinScore(5))
	require.NoError(t, err)
	require.Len(t, res.Collocations, 1)
	require.Equal(t, "win", res.Collocations[0].Lemma)
	require.EqualValues(t, 50, res.Collocations[0].Cooccurrence)
}

func TestDispatchUnknownRelation(t *testing.T) {
	d := &query.Dispatcher{Artifact: buildArtifactFixture(t)}
	_, err := d.GetCollocations(context.Background(), "team", "does-not-exist")
	require.ErrorIs(t, err, query.ErrUnknownRelation)
}

func TestDispatchUnknownLemma(t *testing.T) {
	d := &query.Dispatcher{Artifact: buildArtifactFixture(t)}
	_, err := d.GetCollocations(context.Background(), "ghost", relation.Window)
	require.ErrorIs(t, err, query.ErrUnknownLemma)
}

// --- pattern-execution fallback fixtures ---

type sliceHitIterator struct {
	hits []spanengine.Hit
	pos  int
}

func (it *sliceHitIterator) Next() (spanengine.Hit, bool, error) {
	if it.pos >= len(it.hits) {
		return spanengine.Hit{}, false, nil
	}
	h := it.hits[it.pos]
	it.pos++
	return h, true, nil
}

func (it *sliceHitIterator) Close() error { return nil }

type fakeEngine struct {
	hits      []spanengine.Hit
	sentences map[int64]token.Sentence
}

func (e *fakeEngine) Find(ctx context.Context, q spanengine.Query) (spanengine.HitIterator, error) {
	return &sliceHitIterator{hits: e.hits}, nil
}

func (e *fakeEngine) TotalFrequency(ctx context.Context, field, lemma string) (uint64, error) {
	return 0, nil
}

func (e *fakeEngine) Concordance(ctx context.Context, hit spanengine.Hit) (token.Sentence, error) {
	return e.sentences[hit.SentenceID], nil
}

func (e *fakeEngine) Group(ctx context.Context, hits spanengine.HitIterator, position, limit int) ([]spanengine.HitGroup, error) {
	return nil, nil
}

func buildTermStatsFixture(t *testing.T) *termstats.Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.bin")
	require.NoError(t, termstats.Write(path, []termstats.TermStatistics{
		{Lemma: "team", TotalFrequency: 100, PosDistribution: map[string]uint64{"NN": 100}},
		{Lemma: "score", TotalFrequency: 50, PosDistribution: map[string]uint64{"VBD": 50}},
		{Lemma: "win", TotalFrequency: 5, PosDistribution: map[string]uint64{"VBD": 5}},
	}, 100_000, 1_000))
	r, err := termstats.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestDispatchPatternFallback(t *testing.T) {
	engine := &fakeEngine{
		hits: []spanengine.Hit{
			{SentenceID: 1, Start: 0, End: 1},
			{SentenceID: 1, Start: 0, End: 1},
			{SentenceID: 1, Start: 0, End: 1},
			{SentenceID: 2, Start: 0, End: 1},
		},
		sentences: map[int64]token.Sentence{
			1: {ID: 1, Tokens: []token.Token{
				{Position: 0, Word: "team", Lemma: "team", Tag: "NN"},
				{Position: 1, Word: "scored", Lemma: "score", Tag: "VBD"},
			}},
			2: {ID: 2, Tokens: []token.Token{
				{Position: 0, Word: "team", Lemma: "team", Tag: "NN"},
				{Position: 1, Word: "won", Lemma: "win", Tag: "VBD"},
			}},
		},
	}
	stats := buildTermStatsFixture(t)
	d := &query.Dispatcher{Stats: stats, Engine: engine}

	cfg := &relation.Config{Version: "1", Relations: []relation.Definition{
		{
			ID:                "team-verb",
			Pattern:           `[lemma="team" & tag="NN"] [deprel="nsubj"]`,
			HeadPosition:      1,
			CollocatePosition: 2,
			RelationType:      relation.Dependency,
		},
	}}
	d.Relations = cfg

	res, err := d.GetCollocations(context.Background(), "team", "team-verb", query.WithMinCooccurrence(2))
	require.NoError(t, err)
	require.Len(t, res.Collocations, 1)
	require.Equal(t, "score", res.Collocations[0].Lemma)
	require.EqualValues(t, 3, res.Collocations[0].Cooccurrence)
}

func TestExtractConcordanceTrimsToSingleSentence(t *testing.T) {
	engine := &fakeEngine{
		hits: []spanengine.Hit{{SentenceID: 1, Start: 0, End: 1}},
		sentences: map[int64]token.Sentence{
			1: {ID: 1, Tokens: []token.Token{
				{Position: 0, Word: "the", Lemma: "the", Tag: "DT"},
				{Position: 1, Word: "team", Lemma: "team", Tag: "NN"},
				{Position: 2, Word: "won", Lemma: "win", Tag: "VBD"},
			}},
		},
	}
	d := &query.Dispatcher{Engine: engine}
	cfg := &relation.Config{Version: "1", Relations: []relation.Definition{
		{
			ID:                "subj-verb",
			Pattern:           `[lemma="team"] [lemma="win"]`,
			HeadPosition:      1,
			CollocatePosition: 2,
			RelationType:      relation.Dependency,
		},
	}}
	d.Relations = cfg

	lines, err := d.ExtractConcordance(context.Background(), "team", "win", "subj-verb", 10)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "the team won", lines[0].Text)
}
