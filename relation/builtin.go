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

package relation

// The four grammatical-relation shortcuts available with no configuration
// file, equivalent to the predefined CQL chunks:
//
//	modifiers-of:      [deprel="nmod"] [upos="NOUN"]       -- p_lemma="team" & deprel="nmod" & upos="NOUN"
//	nouns-modified-by: [upos="NOUN"] [deprel="nmod"]       -- lemma="team"   & deprel="nmod" & p_upos="NOUN"
//	verbs-subject:     [deprel="nsubj"] [upos="VERB"]      -- lemma="team"   & deprel="nsubj" & p_upos="VERB"
//	verbs-object:      [deprel="obj|iobj"] [upos="VERB"]   -- lemma="team"   & deprel="obj|iobj" & p_upos="VERB"
const (
	ModifiersOf     = "modifiers-of"
	NounsModifiedBy = "nouns-modified-by"
	VerbsSubject    = "verbs-subject"
	VerbsObject     = "verbs-object"

	// Window is the always-available id of the plain surface co-occurrence
	// relation: both slots carry only the catch-all tag constraint, so it
	// never disqualifies the artifact fast path at dispatch time.
	Window = "window"
)

// IsUnconstrainedSlot reports whether every constraint in a slot is the
// catch-all ".*" regex, i.e. the slot imposes no real restriction beyond
// occupying a position in the window.
func IsUnconstrainedSlot(constraints []string) bool {
	for _, v := range constraints {
		if v != ".*" {
			return false
		}
	}
	return true
}

// BuiltinRelations returns the predefined-search relations, always
// available even with no relation configuration document loaded. Only
// Window precomputes as a plain surface co-occurrence window; the rest
// require live pattern execution, so dispatch falls through to pattern
// matching for them.
func BuiltinRelations() []Definition {
	return []Definition{
		{
			ID:                Window,
			Name:              "Window co-occurrence",
			Description:       "plain co-occurrence within the build's window, answerable directly from the artifact",
			Pattern:           `[tag=".*"]~{0,40} [tag=".*"]`,
			HeadPosition:      1,
			CollocatePosition: 2,
			RelationType:      Surface,
		},
		{
			ID:                ModifiersOf,
			Name:              "Modifiers of",
			Description:       "nominal modifiers (nmod) attaching to the headword noun",
			Pattern:           `[deprel="nmod"] [upos="NOUN"]`,
			HeadPosition:      2,
			CollocatePosition: 1,
			RelationType:      Dependency,
		},
		{
			ID:                NounsModifiedBy,
			Name:              "Nouns modified by",
			Description:       "nouns whose nmod dependent is the headword",
			Pattern:           `[upos="NOUN"] [deprel="nmod"]`,
			HeadPosition:      2,
			CollocatePosition: 1,
			RelationType:      Dependency,
		},
		{
			ID:                VerbsSubject,
			Name:              "Verbs (as subject)",
			Description:       "verbs whose nsubj dependent is the headword",
			Pattern:           `[deprel="nsubj"] [upos="VERB"]`,
			HeadPosition:      1,
			CollocatePosition: 2,
			RelationType:      Dependency,
		},
		{
			ID:                VerbsObject,
			Name:              "Verbs (as object)",
			Description:       "verbs whose obj/iobj dependent is the headword",
			Pattern:           `[deprel="obj|iobj"] [upos="VERB"]`,
			HeadPosition:      1,
			CollocatePosition: 2,
			RelationType:      Dependency,
		},
	}
}
