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

package udtag_test

import (
	"testing"

	"github.com/czcorpus/corpuscoll/udtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreLookupAndReverse(t *testing.T) {
	m := udtag.NewUDDeprelMapping()
	code, ok := m.Get("nsubj")
	require.True(t, ok)
	assert.Equal(t, udtag.DeprelNsubj, code)
	assert.Equal(t, "nsubj", m.GetRev(code))
}

func TestRegisterExtendsVocabulary(t *testing.T) {
	m := udtag.NewUDDeprelMapping()
	code := m.Register("obl:do")
	assert.GreaterOrEqual(t, code, uint16(0x0100))
	assert.Equal(t, "obl:do", m.GetRev(code))

	got, ok := m.Get("obl:do")
	require.True(t, ok)
	assert.Equal(t, code, got)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	m := udtag.NewUDDeprelMapping()
	assert.Panics(t, func() { m.Register("nsubj") })
}

func TestFromMapPreservesExtensions(t *testing.T) {
	m := udtag.NewUDDeprelMapping()
	code := m.Register("obl:na")
	m2 := udtag.FromMap(m.AsMap())
	got, ok := m2.Get("obl:na")
	require.True(t, ok)
	assert.Equal(t, code, got)

	next := m2.Register("obl:v")
	assert.NotEqual(t, code, next)
}

func TestPoSReverseLookup(t *testing.T) {
	assert.Equal(t, "VERB", udtag.UDPoSMapping.GetRev(udtag.PosVERB))
	assert.Equal(t, "", udtag.UDPoSMapping.GetRev(0xff))
}
