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

// TextTypeMapper translates between a corpus's raw text-type byte codes
// and their human-readable register/genre labels.
type TextTypeMapper interface {
	RawToReadable(val byte) string
	ReadableToRaw(val string) byte
}

type hardcodedTextTypes map[string]byte

func (tt hardcodedTextTypes) RawToReadable(val byte) string {
	for k, v := range tt {
		if v == val {
			return k
		}
	}
	return ""
}

func (tt hardcodedTextTypes) ReadableToRaw(val string) byte {
	return tt[val]
}

// CorpusProfile binds a corpus's annotation layout (which tree/column
// positions carry lemma, PoS, parent index, deprel) to its text-type
// register vocabulary, so the same ingest/query code works across
// differently-annotated corpora by swapping the active profile.
type CorpusProfile struct {
	Name          string
	LemmaIdx      int
	PosIdx        int
	ParentIdx     int
	DeprelIdx     int
	TextTypesAttr string
	TextTypes     TextTypeMapper
}

// IsZero reports whether p is the empty, unconfigured profile.
func (p CorpusProfile) IsZero() bool {
	return p.LemmaIdx == 0 && p.PosIdx == 0 && p.ParentIdx == 0 && p.DeprelIdx == 0
}

// FindProfile returns the built-in profile registered under name, or the
// zero CorpusProfile if unknown.
func FindProfile(name string) CorpusProfile {
	switch name {
	case "ud_conllu_v2":
		return CorpusProfile{
			Name:          name,
			LemmaIdx:      4,
			PosIdx:        6,
			ParentIdx:     12,
			DeprelIdx:     11,
			TextTypesAttr: "text.txtype",
			TextTypes: hardcodedTextTypes{
				"fiction":    0x01,
				"journalism": 0x02,
				"nonfiction": 0x03,
				"legal":      0x04,
				"spoken":     0x05,
				"other":      0x06,
			},
		}
	default:
		return CorpusProfile{}
	}
}
