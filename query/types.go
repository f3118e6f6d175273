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

package query

// Collocation is one scored collocate returned by a GetCollocations
// call, regardless of whether it was answered from the precomputed
// artifact or from live pattern execution.
type Collocation struct {
	Lemma              string
	Pos                string
	Cooccurrence       uint64
	HeadFrequency      uint64
	CollocateFrequency uint64
	LogDice            float64
	MI3                float64
	TScore             float64
	LogLikelihood      float64
	RRFScore           float64
	MutualDist         float64
}

// Result is one GetCollocations response. Cancelled is set when the
// context was cancelled before the request finished; Collocations still
// holds whatever had already been aggregated.
type Result struct {
	Collocations []Collocation
	Cancelled    bool
}
