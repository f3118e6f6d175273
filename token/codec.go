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

package token

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCorruptBlob is returned when a token-sequence blob cannot be decoded,
// either because it is truncated or because a varint fails to terminate
// within its maximum width.
var ErrCorruptBlob = errors.New("corrupt token blob")

const maxVarintBytes = 5 // enough for any value this codec ever writes

// Encode serializes tokens as: varint(tokenCount), then for each token in
// position order: varint(position), lenPrefixedUtf8(word),
// lenPrefixedUtf8(lemma), lenPrefixedUtf8(tag), varint(startOffset),
// varint(endOffset).
func Encode(tokens []Token) []byte {
	buf := make([]byte, 0, 16*len(tokens)+8)
	buf = appendUvarint(buf, uint64(len(tokens)))
	for _, t := range tokens {
		buf = appendUvarint(buf, uint64(t.Position))
		buf = appendString(buf, t.Word)
		buf = appendString(buf, t.Lemma)
		buf = appendString(buf, t.Tag)
		buf = appendUvarint(buf, uint64(t.StartOffset))
		buf = appendUvarint(buf, uint64(t.EndOffset))
	}
	return buf
}

// Decode fully decodes a blob produced by Encode. It fails with
// ErrCorruptBlob on truncated input or a non-terminating varint.
func Decode(blob []byte) ([]Token, error) {
	r := reader{buf: blob}
	count, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, count)
	for i := uint64(0); i < count; i++ {
		tok, err := r.token()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// TokenAtPosition scans blob for the token whose Position == p. Positions
// are monotone non-decreasing, so the scan stops as soon as a decoded
// position exceeds p. Returns (Token{}, false) if not found or on decode
// error.
func TokenAtPosition(blob []byte, p int) (Token, bool) {
	r := reader{buf: blob}
	count, err := r.uvarint()
	if err != nil {
		return Token{}, false
	}
	for i := uint64(0); i < count; i++ {
		tok, err := r.token()
		if err != nil {
			return Token{}, false
		}
		if tok.Position == p {
			return tok, true
		}
		if tok.Position > p {
			return Token{}, false
		}
	}
	return Token{}, false
}

// TokensInRange scans blob for tokens whose Position is in [lo, hi],
// stopping early once a decoded position exceeds hi.
func TokensInRange(blob []byte, lo, hi int) ([]Token, error) {
	r := reader{buf: blob}
	count, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	var out []Token
	for i := uint64(0); i < count; i++ {
		tok, err := r.token()
		if err != nil {
			return nil, err
		}
		if tok.Position > hi {
			break
		}
		if tok.Position >= lo {
			out = append(out, tok)
		}
	}
	return out, nil
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) uvarint() (uint64, error) {
	end := r.pos + maxVarintBytes
	if end > len(r.buf) {
		end = len(r.buf)
	}
	v, n := binary.Uvarint(r.buf[r.pos:end])
	if n <= 0 {
		return 0, fmt.Errorf("%w: varint at offset %d", ErrCorruptBlob, r.pos)
	}
	r.pos += n
	return v, nil
}

func (r *reader) string() (string, error) {
	n, err := r.uvarint()
	if err != nil {
		return "", err
	}
	if r.pos+int(n) > len(r.buf) {
		return "", fmt.Errorf("%w: string at offset %d", ErrCorruptBlob, r.pos)
	}
	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return s, nil
}

func (r *reader) token() (Token, error) {
	var t Token
	pos, err := r.uvarint()
	if err != nil {
		return t, err
	}
	t.Position = int(pos)
	if t.Word, err = r.string(); err != nil {
		return t, err
	}
	if t.Lemma, err = r.string(); err != nil {
		return t, err
	}
	if t.Tag, err = r.string(); err != nil {
		return t, err
	}
	start, err := r.uvarint()
	if err != nil {
		return t, err
	}
	end, err := r.uvarint()
	if err != nil {
		return t, err
	}
	t.StartOffset = int(start)
	t.EndOffset = int(end)
	return t, nil
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}

func appendString(buf []byte, s string) []byte {
	buf = appendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}
