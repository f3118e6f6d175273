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

package pattern

import (
	"fmt"

	"github.com/czcorpus/corpuscoll/spanengine"
)

// Compile turns a parsed (and, typically, head-substituted) Pattern into
// a spanengine.Query: each slot's value becomes a whole-token-anchored
// regular expression, case-insensitive for lemma/word.
func Compile(p *Pattern) spanengine.Query {
	q := spanengine.Query{Slots: make([]spanengine.Slot, len(p.Slots))}
	for i, s := range p.Slots {
		constraints := make([]spanengine.SlotConstraint, len(s.Constraints))
		for j, c := range s.Constraints {
			value := fmt.Sprintf("^(%s)$", c.Value)
			if c.Field == "lemma" || c.Field == "word" {
				value = "(?i)" + value
			}
			constraints[j] = spanengine.SlotConstraint{Field: c.Field, Op: c.Op, Value: value}
		}
		q.Slots[i] = spanengine.Slot{Constraints: constraints, GapMin: s.GapMin, GapMax: s.GapMax}
	}
	return q
}
