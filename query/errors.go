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

// Package query dispatches a headword/relation request either to the
// precomputed collocations artifact or to live pattern execution against
// an external span engine, and extracts single-sentence concordances.
package query

import "errors"

// ErrUnknownRelation is returned when relationId names no configured or
// builtin relation.
var ErrUnknownRelation = errors.New("unknown relation")

// ErrUnknownLemma is returned when the headword has no statistics entry
// at all (neither artifact nor term-statistics store has seen it).
var ErrUnknownLemma = errors.New("unknown lemma")

// ErrCancelled names a cancelled query. GetCollocations does not return
// it: cancellation is reported through Result.Cancelled, alongside
// whatever had already been aggregated. ExtractConcordance returns the
// lines gathered so far with a nil error.
var ErrCancelled = errors.New("query cancelled")
