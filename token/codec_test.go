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

package token_test

import (
	"testing"

	"github.com/czcorpus/corpuscoll/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTokens() []token.Token {
	return []token.Token{
		{Position: 0, Word: "The", Lemma: "the", Tag: "DT", StartOffset: 0, EndOffset: 3},
		{Position: 1, Word: "cats", Lemma: "cat", Tag: "NNS", StartOffset: 4, EndOffset: 8},
		{Position: 2, Word: "", Lemma: "", Tag: "", StartOffset: 9, EndOffset: 9},
		{Position: 3, Word: "sleep", Lemma: "sleep", Tag: "VBP", StartOffset: 10, EndOffset: 15},
	}
}

func TestRoundTrip(t *testing.T) {
	toks := sampleTokens()
	blob := token.Encode(toks)
	decoded, err := token.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, toks, decoded)
}

func TestRoundTripEmpty(t *testing.T) {
	blob := token.Encode(nil)
	decoded, err := token.Decode(blob)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestTokenAtPosition(t *testing.T) {
	blob := token.Encode(sampleTokens())
	tok, ok := token.TokenAtPosition(blob, 1)
	require.True(t, ok)
	assert.Equal(t, "cat", tok.Lemma)

	_, ok = token.TokenAtPosition(blob, 99)
	assert.False(t, ok)
}

func TestTokensInRange(t *testing.T) {
	blob := token.Encode(sampleTokens())
	toks, err := token.TokensInRange(blob, 1, 2)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "cat", toks[0].Lemma)
	assert.Equal(t, "", toks[1].Lemma)
}

func TestDecodeCorruptTruncated(t *testing.T) {
	blob := token.Encode(sampleTokens())
	_, err := token.Decode(blob[:len(blob)-1])
	assert.ErrorIs(t, err, token.ErrCorruptBlob)
}

func TestDecodeCorruptBadVarint(t *testing.T) {
	// five continuation bytes that never terminate
	blob := []byte{0x80, 0x80, 0x80, 0x80, 0x80}
	_, err := token.Decode(blob)
	assert.ErrorIs(t, err, token.ErrCorruptBlob)
}
