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

package pattern_test

import (
	"testing"

	"github.com/czcorpus/corpuscoll/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTwoSlots(t *testing.T) {
	p, err := pattern.Parse(`[deprel="nmod"] [upos="NOUN"]`)
	require.NoError(t, err)
	require.Len(t, p.Slots, 2)
	assert.Equal(t, "deprel", p.Slots[0].Constraints[0].Field)
	assert.Equal(t, "nmod", p.Slots[0].Constraints[0].Value)
}

func TestParseWithGap(t *testing.T) {
	p, err := pattern.Parse(`[lemma="cat"]~{0,2} [lemma="sit"]`)
	require.NoError(t, err)
	require.True(t, p.Slots[0].HasGap)
	assert.Equal(t, 0, p.Slots[0].GapMin)
	assert.Equal(t, 2, p.Slots[0].GapMax)
}

func TestParseRejectsEmptyPattern(t *testing.T) {
	_, err := pattern.Parse("   ")
	assert.ErrorIs(t, err, pattern.ErrInvalidPattern)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := pattern.Parse(`[bogus="x"]`)
	assert.ErrorIs(t, err, pattern.ErrInvalidPattern)
}

func TestSubstitutePreservesTagConstraint(t *testing.T) {
	p, err := pattern.Parse(`[deprel="nmod"] [upos="NOUN" & tag="NN"]`)
	require.NoError(t, err)
	out, err := pattern.Substitute(p, 2, "Team")
	require.NoError(t, err)
	require.Len(t, out.Slots[1].Constraints, 2)
	assert.Equal(t, "lemma", out.Slots[1].Constraints[0].Field)
	assert.Equal(t, "team", out.Slots[1].Constraints[0].Value)
	assert.Equal(t, "tag", out.Slots[1].Constraints[1].Field)
	// the original pattern is untouched
	assert.Equal(t, "upos", p.Slots[1].Constraints[0].Field)
}

func TestCompileAnchorsAndCaseFoldsLemma(t *testing.T) {
	p, err := pattern.Parse(`[lemma="cat|dog"]`)
	require.NoError(t, err)
	q := pattern.Compile(p)
	require.Len(t, q.Slots, 1)
	assert.Equal(t, `(?i)^(cat|dog)$`, q.Slots[0].Constraints[0].Value)
}
