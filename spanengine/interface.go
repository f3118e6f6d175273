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

// Package spanengine defines the four operations the query
// runtime needs from an external, corpus-scale span index: find,
// totalFrequency, concordance and group. The runtime is written only
// against this interface; badgerref is a reference/test implementation,
// not the only possible one.
package spanengine

import (
	"context"

	"github.com/czcorpus/corpuscoll/token"
)

// SlotConstraint is one `field op value` clause of a compiled pattern
// slot. Value is a regular expression source; Op is "=" (must match) or
// "!=" (must not match).
type SlotConstraint struct {
	Field string
	Op    string
	Value string
}

// Slot is one token position of a compiled query: a conjunction of
// constraints, optionally followed by a gap of GapMin..GapMax arbitrary
// tokens before the next slot.
type Slot struct {
	Constraints []SlotConstraint
	GapMin      int
	GapMax      int
}

// Query is a compiled span-near query: an ordered sequence of slots.
type Query struct {
	Slots []Slot
}

// Hit identifies one match: the sentence it occurred in and the token
// position range (inclusive, 0-based) it spans.
type Hit struct {
	SentenceID int64
	Start      int
	End        int
}

// HitGroup is one group of Group's output: matches sharing the same
// surface/lemma value at the grouped position.
type HitGroup struct {
	Key   string
	Count int
	Hits  []Hit
}

// HitIterator streams matches one at a time, in engine-defined order.
type HitIterator interface {
	Next() (Hit, bool, error)
	Close() error
}

// Engine is the span-index capability the query runtime depends on.
type Engine interface {
	// Find executes a compiled span-near query and returns a streaming
	// iterator over its matches.
	Find(ctx context.Context, q Query) (HitIterator, error)

	// TotalFrequency returns the corpus-wide occurrence count of lemma
	// within field ("lemma" or "word").
	TotalFrequency(ctx context.Context, field, lemma string) (uint64, error)

	// Concordance resolves a hit's sentence and returns its tokens,
	// together with the full sentence's token range, so the caller can
	// trim context to a single sentence.
	Concordance(ctx context.Context, hit Hit) (token.Sentence, error)

	// Group partitions hits by the token's lemma at slot position
	// (1-based) and returns up to limit groups, largest first.
	Group(ctx context.Context, hits HitIterator, position int, limit int) ([]HitGroup, error)
}
