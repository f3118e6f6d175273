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

package score_test

import (
	"math"
	"testing"

	"github.com/czcorpus/corpuscoll/score"
	"github.com/stretchr/testify/assert"
)

// TestDeterminism fixes fAB=50, fA=1000, fB=2000, N=1e7 and locks down the
// exact values the formulas produce for that input, guarding against
// accidental regressions in the arithmetic.
func TestDeterminism(t *testing.T) {
	const fAB, fA, fB = 50, 1000, 2000
	const n = 10_000_000

	assert.InDelta(t, 9.093109, score.LogDice(fAB, fA, fB), 1e-5)
	assert.InDelta(t, 7.965784, score.MI3(fAB, fA, fB, n), 1e-5)
	assert.InDelta(t, 111.35777, score.TScore(fAB, fA, fB, n), 1e-4)
	assert.InDelta(t, 552.14608, score.LogLikelihood(fAB, fA, fB, n), 1e-3)
}

func TestLogDiceClamping(t *testing.T) {
	assert.Equal(t, 14.0, score.LogDice(1_000_000, 1, 1))
	assert.Equal(t, 0.0, score.LogDice(0, 100, 100))
	assert.Equal(t, 0.0, score.LogDice(5, 0, 0))
}

func TestDegenerateInputsAreFiniteAndZero(t *testing.T) {
	cases := []float64{
		score.MI3(0, 0, 0, 0),
		score.TScore(0, 0, 0, 0),
		score.LogLikelihood(0, 0, 0, 0),
		score.MI3(5, 0, 10, 100),
		score.TScore(5, 10, 0, 100),
		score.LogLikelihood(5, 10, 10, 0),
	}
	for _, v := range cases {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
		assert.Equal(t, 0.0, v)
	}
}

func TestRRFOrdersBetterRanksHigher(t *testing.T) {
	best := score.RRF(0, 0, 0)
	worst := score.RRF(50, 50, 50)
	assert.Greater(t, best, worst)
}
