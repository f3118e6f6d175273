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

package ingest

import (
	"github.com/czcorpus/corpuscoll/spanengine/badgerref"
	"github.com/czcorpus/corpuscoll/token"
)

// Token is one sentence-local position with every annotation layer the
// pattern language and the collocations builder might need.
type Token struct {
	Position int
	Word     string
	Lemma    string
	Tag      string
	UPos     string
	XPos     string
	Deprel   string
}

// Sentence is one fully annotated sentence produced by a Processor, in
// original surface order.
type Sentence struct {
	ID     int64
	Tokens []Token
}

// ToTokenSentence projects Sentence down to the fields the collocations
// builder's pipeline (lexicon, term statistics, C1 encoding) consumes.
func (s Sentence) ToTokenSentence() token.Sentence {
	out := token.Sentence{ID: s.ID, Tokens: make([]token.Token, len(s.Tokens))}
	for i, t := range s.Tokens {
		out.Tokens[i] = token.Token{
			Position: t.Position,
			Word:     t.Word,
			Lemma:    t.Lemma,
			Tag:      t.Tag,
		}
	}
	return out
}

// ToAnnotatedSentence projects Sentence to the richer shape the span
// engine's reference store indexes, preserving the deprel label the
// pattern language's deprel constraint matches against.
func (s Sentence) ToAnnotatedSentence() badgerref.AnnotatedSentence {
	out := badgerref.AnnotatedSentence{ID: s.ID, Tokens: make([]badgerref.AnnotatedToken, len(s.Tokens))}
	for i, t := range s.Tokens {
		out.Tokens[i] = badgerref.AnnotatedToken{
			Position: t.Position,
			Word:     t.Word,
			Lemma:    t.Lemma,
			Tag:      t.Tag,
			UPos:     t.UPos,
			XPos:     t.XPos,
			Deprel:   t.Deprel,
		}
	}
	return out
}
