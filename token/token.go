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

// Package token defines the annotated token/sentence data model and its
// compact binary codec used for per-sentence column storage.
package token

// Token is a single annotated word occurrence within a Sentence.
type Token struct {
	Position    int
	Word        string
	Lemma       string
	Tag         string
	StartOffset int
	EndOffset   int
}

// Sentence is an immutable, position-contiguous sequence of Tokens together
// with its raw source text and a monotone identity assigned at index build.
type Sentence struct {
	ID     int64
	Text   string
	Tokens []Token
}
