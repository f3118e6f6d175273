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

// Package badgerref is a reference, BadgerDB-backed implementation of
// spanengine.Engine, suitable for tests and small corpora: every sentence
// is stored fully annotated (lemma, word, tag, upos, xpos, deprel) and
// Find evaluates patterns by linear scan, not a specialized index.
package badgerref

import "encoding/json"

// AnnotatedToken carries every annotation field the pattern language can
// constrain, a superset of token.Token (which only needs enough fields
// for the collocations builder's own pipeline).
type AnnotatedToken struct {
	Position int
	Word     string
	Lemma    string
	Tag      string
	UPos     string
	XPos     string
	Deprel   string
}

// AnnotatedSentence is one sentence as the span engine stores it.
type AnnotatedSentence struct {
	ID     int64
	Tokens []AnnotatedToken
}

func encodeSentence(s AnnotatedSentence) ([]byte, error) {
	return json.Marshal(s)
}

func decodeSentence(data []byte) (AnnotatedSentence, error) {
	var s AnnotatedSentence
	err := json.Unmarshal(data, &s)
	return s, err
}
