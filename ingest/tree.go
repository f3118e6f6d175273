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
	"strconv"
	"strings"

	"github.com/tomachalek/vertigo/v6"
)

// IsStructuralDeprel reports whether rel is a purely structural dependency
// relation (punctuation, determiners, auxiliaries, ...) unlikely to make a
// useful collocate. It doesn't drop tokens - the pattern language and
// relation definitions decide whether to filter on it - since the span
// engine and C1 codec both need the sentence's full, original token
// sequence to resolve positions correctly.
func IsStructuralDeprel(rel string) bool {
	return rel == "punct" || rel == "cc" || strings.HasPrefix(rel, "det") || strings.HasPrefix(rel, "aux") ||
		rel == "cop" || rel == "mark" || strings.HasPrefix(rel, "expl") || rel == "discourse" ||
		rel == "goeswith" || rel == "reparandum" || rel == "orphan" || rel == "list" || rel == "vocative" ||
		rel == "dep"
}

// resolveDeprels reads each token's deprel column and, for an adposition
// whose head carries deprel "obl", folds the adposition's lemma into the
// head's relation as "obl:<lemma>", applied in place so token order and
// count are unchanged and position-based matching downstream still works.
func resolveDeprels(toks []*vertigo.Token, cfg Config) []string {
	deprels := make([]string, len(toks))
	for i, t := range toks {
		deprels[i] = t.PosAttrByIndex(cfg.DeprelIdx)
	}
	for i, t := range toks {
		if t.PosAttrByIndex(cfg.UPosIdx) != "ADP" {
			continue
		}
		parentIdx, ok := resolveParent(t, i, cfg.ParentIdx)
		if !ok || parentIdx < 0 || parentIdx >= len(toks) || parentIdx == i {
			continue
		}
		if deprels[parentIdx] == "obl" {
			deprels[parentIdx] = "obl:" + t.PosAttrByIndex(cfg.LemmaIdx)
		}
	}
	return deprels
}

// resolveParent converts the vertical file's relative parent offset (a
// signed integer, optionally "+"-prefixed, possibly multivalued via "|" -
// only the first value is used here since folding needs a single head) at
// token index i into an absolute token index.
func resolveParent(t *vertigo.Token, i, parentIdx int) (int, bool) {
	raw := t.PosAttrByIndex(parentIdx)
	if raw == "" {
		return -1, false
	}
	if idx := strings.IndexByte(raw, '|'); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimPrefix(raw, "+")
	rel, err := strconv.Atoi(raw)
	if err != nil {
		return -1, false
	}
	return i + rel, true
}
