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

package termstats

import (
	"sort"
	"sync"

	"github.com/czcorpus/corpuscoll/token"
)

// Builder accumulates TermStatistics across sentences. Safe for concurrent
// use from multiple ingestion workers.
type Builder struct {
	mu             sync.Mutex
	stats          map[string]*TermStatistics
	totalTokens    uint64
	totalSentences uint64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{stats: make(map[string]*TermStatistics)}
}

// ObserveSentence folds one sentence's tokens into the running statistics.
// The empty lemma is skipped entirely, matching the builder's lemma-id-0
// convention.
func (b *Builder) ObserveSentence(sent token.Sentence) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.totalSentences++

	seen := make(map[string]bool, len(sent.Tokens))
	for _, tok := range sent.Tokens {
		if tok.Lemma == "" {
			continue
		}
		b.totalTokens++
		ts, ok := b.stats[tok.Lemma]
		if !ok {
			ts = &TermStatistics{Lemma: tok.Lemma, PosDistribution: make(map[string]uint64)}
			b.stats[tok.Lemma] = ts
		}
		ts.TotalFrequency++
		ts.PosDistribution[tok.Tag]++
		if !seen[tok.Lemma] {
			seen[tok.Lemma] = true
			ts.DocumentFrequency++
		}
	}
}

// TotalTokens returns the running total-occurrences count across all
// observed sentences (excluding the empty lemma).
func (b *Builder) TotalTokens() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalTokens
}

// TotalSentences returns the number of sentences folded in so far.
func (b *Builder) TotalSentences() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalSentences
}

// Get returns a copy of the statistics accumulated for lemma, if any.
func (b *Builder) Get(lemma string) (TermStatistics, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ts, ok := b.stats[lemma]
	if !ok {
		return TermStatistics{}, false
	}
	return *ts, true
}

// Records returns all accumulated statistics sorted by descending
// TotalFrequency (ties broken by lemma ascending), the order the C3 file
// format requires so readers can stream "top frequent lemmas" without
// sorting.
func (b *Builder) Records() []TermStatistics {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]TermStatistics, 0, len(b.stats))
	for _, ts := range b.stats {
		out = append(out, *ts)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalFrequency != out[j].TotalFrequency {
			return out[i].TotalFrequency > out[j].TotalFrequency
		}
		return out[i].Lemma < out[j].Lemma
	})
	return out
}
