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

// Package lexicon assigns dense integer ids to corpus lemmas during a build
// and serves O(1) id <-> lemma, frequency and dominant-tag lookups at query
// time from a memory-mapped file.
package lexicon

import "errors"

const (
	magic      uint32 = 0x4c45584d // "LEXM"
	formatVers uint32 = 1

	// headerSize is {magic u32, version u32, totalTokens u64,
	// totalSentences u64, entryCount u32} with 4 bytes of padding to keep
	// the entry table 8-byte aligned.
	headerSize = 4 + 4 + 8 + 8 + 4 + 4
)

// ErrCorruptLexicon is returned when a lexicon file fails header
// validation or an entry cannot be decoded.
var ErrCorruptLexicon = errors.New("corrupt lexicon file")

// EmptyLemmaID is the reserved id for the empty-string lemma; it is never
// allocated to an observed lemma.
const EmptyLemmaID uint32 = 0
