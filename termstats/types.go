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

// Package termstats maintains per-lemma aggregate frequency statistics
// used as the denominator source for association scores, both during
// building and as a fast lemma-keyed lookup at query time.
package termstats

import "errors"

// TermStatistics is the per-lemma aggregate described in the data model:
// sum(PosDistribution values) always equals TotalFrequency.
type TermStatistics struct {
	Lemma              string
	TotalFrequency     uint64
	DocumentFrequency  uint32
	PosDistribution    map[string]uint64
}

const (
	magic      uint32 = 0x5453544d // "TSTM"
	formatVers uint32 = 1
	headerSize        = 4 + 4 + 8 + 8 + 4 + 4
)

// ErrCorruptStore is returned when a term-statistics file fails header
// validation or a record cannot be decoded.
var ErrCorruptStore = errors.New("corrupt term statistics store")
