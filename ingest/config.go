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

// Package ingest reads a vertical file via vertigo and turns each sentence
// structure into an ingest.Sentence: a flat, position-preserving token
// sequence annotated with word, lemma, coarse/fine tag and a
// dependency-relation label. Callers feed ingest.Sentence into both the
// collocations-builder pipeline (via ToTokenSentence) and the span-engine
// store (via ToAnnotatedSentence).
package ingest

// Config names the vertical file's column layout. Indices follow vertigo's
// own PosAttrByIndex convention: index 0 is the token's word form (always
// present), indices 1.. address the remaining positional attributes in
// column order.
type Config struct {
	LemmaIdx  int
	TagIdx    int
	UPosIdx   int
	XPosIdx   int
	ParentIdx int
	DeprelIdx int

	// MaxSentSize bounds the token lookback buffer; a sentence longer than
	// this is truncated rather than growing the buffer unboundedly.
	MaxSentSize int

	// StructureName is the vertical structure that closes a sentence
	// (typically "s").
	StructureName string
}

// DefaultConfig mirrors a typical UD-tagged vertical file: word, lemma,
// upos, xpos, parent (relative offset) and deprel. The fine tag is read
// from the xpos column.
func DefaultConfig() Config {
	return Config{
		LemmaIdx:      1,
		UPosIdx:       2,
		XPosIdx:       3,
		TagIdx:        3,
		ParentIdx:     4,
		DeprelIdx:     5,
		MaxSentSize:   200,
		StructureName: "s",
	}
}
