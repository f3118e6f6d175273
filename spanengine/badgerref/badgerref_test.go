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

package badgerref_test

import (
	"context"
	"testing"

	"github.com/czcorpus/corpuscoll/spanengine"
	"github.com/czcorpus/corpuscoll/spanengine/badgerref"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *badgerref.Store {
	s, err := badgerref.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func tok(pos int, word, lemma, tag, upos, deprel string) badgerref.AnnotatedToken {
	return badgerref.AnnotatedToken{Position: pos, Word: word, Lemma: lemma, Tag: tag, UPos: upos, Deprel: deprel}
}

func TestFindMatchesSimplePattern(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutSentence(badgerref.AnnotatedSentence{
		ID: 1,
		Tokens: []badgerref.AnnotatedToken{
			tok(0, "the", "the", "DT", "DET", "det"),
			tok(1, "team", "team", "NN", "NOUN", "nsubj"),
			tok(2, "won", "win", "VBD", "VERB", "root"),
		},
	}))

	eng := badgerref.NewEngine(s)
	q := spanengine.Query{Slots: []spanengine.Slot{
		{Constraints: []spanengine.SlotConstraint{{Field: "deprel", Op: "=", Value: "^(nsubj)$"}}},
		{Constraints: []spanengine.SlotConstraint{{Field: "upos", Op: "=", Value: "^(VERB)$"}}},
	}}
	it, err := eng.Find(context.Background(), q)
	require.NoError(t, err)

	var hits []spanengine.Hit
	for {
		h, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		hits = append(hits, h)
	}
	require.Len(t, hits, 1)
	require.Equal(t, 1, hits[0].Start)
	require.Equal(t, 2, hits[0].End)
}

func TestTotalFrequencyCountsAcrossSentences(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.PutSentence(badgerref.AnnotatedSentence{ID: 1, Tokens: []badgerref.AnnotatedToken{tok(0, "cat", "cat", "NN", "NOUN", "root")}}))
	require.NoError(t, s.PutSentence(badgerref.AnnotatedSentence{ID: 2, Tokens: []badgerref.AnnotatedToken{tok(0, "cat", "cat", "NN", "NOUN", "root")}}))

	eng := badgerref.NewEngine(s)
	freq, err := eng.TotalFrequency(context.Background(), "lemma", "cat")
	require.NoError(t, err)
	require.EqualValues(t, 2, freq)
}
