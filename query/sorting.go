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

import "sort"

// SortingMeasure names the score a result set is ordered by (descending,
// lemma ascending on ties); logDice is the default.
type SortingMeasure string

const (
	SortByLogDice       SortingMeasure = "logDice"
	SortByMI3           SortingMeasure = "mi3"
	SortByTScore        SortingMeasure = "tScore"
	SortByLogLikelihood SortingMeasure = "logLikelihood"
	SortByRRF           SortingMeasure = "rrf"
)

func (m SortingMeasure) Validate() bool {
	switch m {
	case SortByLogDice, SortByMI3, SortByTScore, SortByLogLikelihood, SortByRRF:
		return true
	default:
		return false
	}
}

// sortResults orders collocates by measure descending, lemma ascending
// on ties. Callers pass SortByLogDice for the default contract ordering.
func sortResults(results []Collocation, measure SortingMeasure) {
	key := func(c Collocation) float64 {
		switch measure {
		case SortByMI3:
			return c.MI3
		case SortByTScore:
			return c.TScore
		case SortByLogLikelihood:
			return c.LogLikelihood
		case SortByRRF:
			return c.RRFScore
		default:
			return c.LogDice
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		ki, kj := key(results[i]), key(results[j])
		if ki != kj {
			return ki > kj
		}
		return results[i].Lemma < results[j].Lemma
	})
}
