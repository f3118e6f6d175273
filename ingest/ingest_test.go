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

package ingest_test

import (
	"testing"

	"github.com/czcorpus/corpuscoll/ingest"
	"github.com/stretchr/testify/require"
)

func sampleSentence() ingest.Sentence {
	return ingest.Sentence{
		ID: 7,
		Tokens: []ingest.Token{
			{Position: 0, Word: "the", Lemma: "the", Tag: "DT", UPos: "DET", XPos: "DT", Deprel: "det"},
			{Position: 1, Word: "team", Lemma: "team", Tag: "NN", UPos: "NOUN", XPos: "NN", Deprel: "nsubj"},
			{Position: 2, Word: "won", Lemma: "win", Tag: "VBD", UPos: "VERB", XPos: "VBD", Deprel: "root"},
		},
	}
}

func TestToTokenSentenceDropsAnnotationLayersButKeepsOrder(t *testing.T) {
	ts := sampleSentence().ToTokenSentence()
	require.EqualValues(t, 7, ts.ID)
	require.Len(t, ts.Tokens, 3)
	require.Equal(t, "team", ts.Tokens[1].Lemma)
	require.Equal(t, "NN", ts.Tokens[1].Tag)
	require.Equal(t, 2, ts.Tokens[2].Position)
}

func TestToAnnotatedSentenceKeepsDeprel(t *testing.T) {
	as := sampleSentence().ToAnnotatedSentence()
	require.EqualValues(t, 7, as.ID)
	require.Len(t, as.Tokens, 3)
	require.Equal(t, "nsubj", as.Tokens[1].Deprel)
	require.Equal(t, "VERB", as.Tokens[2].UPos)
}

func TestIsStructuralDeprel(t *testing.T) {
	require.True(t, ingest.IsStructuralDeprel("punct"))
	require.True(t, ingest.IsStructuralDeprel("det"))
	require.True(t, ingest.IsStructuralDeprel("aux:pass"))
	require.False(t, ingest.IsStructuralDeprel("nsubj"))
	require.False(t, ingest.IsStructuralDeprel("obl:v"))
}

func TestDefaultConfigSentenceSettings(t *testing.T) {
	cfg := ingest.DefaultConfig()
	require.Equal(t, "s", cfg.StructureName)
	require.Greater(t, cfg.MaxSentSize, 0)
}
