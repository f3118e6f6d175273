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
	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/tomachalek/vertigo/v6"
)

// Processor implements vertigo.LineProcessor, buffering one sentence's
// worth of tokens at a time and emitting a completed Sentence to Out as
// soon as the structure that closes it is seen.
type Processor struct {
	cfg  Config
	Out  chan<- Sentence
	next int64

	prevTokens       *collections.CircularList[*vertigo.Token]
	lastTokenIdx     int
	lastSentStartIdx int
	lastSentEndIdx   int
	foundNewSent     bool
}

// NewProcessor builds a Processor that sends completed sentences to out.
// The caller owns out and must drain it concurrently with the
// vertigo.ParseVerticalFile call driving this Processor, or ingestion will
// deadlock once the channel fills.
func NewProcessor(cfg Config, out chan<- Sentence) *Processor {
	return &Processor{
		cfg:        cfg,
		Out:        out,
		prevTokens: collections.NewCircularList[*vertigo.Token](cfg.MaxSentSize),
	}
}

func (p *Processor) ProcToken(tk *vertigo.Token, line int, err error) error {
	p.prevTokens.Append(tk)
	p.lastTokenIdx = tk.Idx
	if p.foundNewSent {
		p.lastSentStartIdx = tk.Idx
		p.foundNewSent = false
	}
	return nil
}

func (p *Processor) ProcStruct(st *vertigo.Structure, line int, err error) error {
	if st.Name == p.cfg.StructureName {
		p.lastSentEndIdx = p.lastTokenIdx
		p.emitSentence()
		p.foundNewSent = true
	}
	return nil
}

func (p *Processor) ProcStructClose(st *vertigo.StructureClose, line int, err error) error {
	return nil
}

func (p *Processor) emitSentence() {
	var toks []*vertigo.Token
	var open bool
	p.prevTokens.ForEach(func(i int, item *vertigo.Token) bool {
		if item.Idx == p.lastSentStartIdx {
			open = true
		}
		if open {
			toks = append(toks, item)
		}
		if item.Idx == p.lastSentEndIdx {
			open = false
		}
		return true
	})
	if len(toks) == 0 {
		return
	}

	deprels := resolveDeprels(toks, p.cfg)
	sent := Sentence{ID: p.next, Tokens: make([]Token, len(toks))}
	for i, tk := range toks {
		sent.Tokens[i] = Token{
			Position: i,
			Word:     tk.Word,
			Lemma:    tk.PosAttrByIndex(p.cfg.LemmaIdx),
			Tag:      tk.PosAttrByIndex(p.cfg.TagIdx),
			UPos:     tk.PosAttrByIndex(p.cfg.UPosIdx),
			XPos:     tk.PosAttrByIndex(p.cfg.XPosIdx),
			Deprel:   deprels[i],
		}
	}
	p.next++
	p.Out <- sent
}
