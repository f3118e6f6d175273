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

package lexicon

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Builder assigns dense ids to lemmas concurrently. The empty lemma always
// maps to EmptyLemmaID and is never counted towards Frequency.
type Builder struct {
	mu        sync.RWMutex
	lemmaToID map[string]uint32
	nextID    atomic.Uint32

	freqMu sync.Mutex
	freq   []uint64
	tags   []map[string]uint64
}

// NewBuilder returns a Builder with the empty lemma pre-registered at id 0.
func NewBuilder() *Builder {
	b := &Builder{
		lemmaToID: map[string]uint32{"": EmptyLemmaID},
		freq:      []uint64{0},
		tags:      []map[string]uint64{{}},
	}
	b.nextID.Store(1)
	return b
}

// GetOrCreate returns the id for lemma, assigning a fresh one via atomic
// increment if this is the first occurrence.
func (b *Builder) GetOrCreate(lemma string) uint32 {
	b.mu.RLock()
	id, ok := b.lemmaToID[lemma]
	b.mu.RUnlock()
	if ok {
		return id
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.lemmaToID[lemma]; ok {
		return id
	}
	id = b.nextID.Add(1) - 1
	b.lemmaToID[lemma] = id

	b.freqMu.Lock()
	for uint32(len(b.freq)) <= id {
		b.freq = append(b.freq, 0)
		b.tags = append(b.tags, map[string]uint64{})
	}
	b.freqMu.Unlock()
	return id
}

// Observe records one occurrence of lemma tagged with tag, creating the
// lemma's id if necessary. Observing the empty lemma is a no-op beyond id
// assignment: it never contributes to Frequency per spec's
// `frequency[0] == 0` invariant.
func (b *Builder) Observe(lemma, tag string) uint32 {
	id := b.GetOrCreate(lemma)
	if lemma == "" {
		return id
	}
	b.freqMu.Lock()
	b.freq[id]++
	b.tags[id][tag]++
	b.freqMu.Unlock()
	return id
}

// Len returns the number of distinct lemmas registered so far, including
// the reserved empty lemma.
func (b *Builder) Len() int {
	return int(b.nextID.Load())
}

// Entry is a finalized, read-only view of one lexicon id used by Write.
type Entry struct {
	Lemma       string
	Frequency   uint64
	DominantTag string
}

// Entries returns all registered entries in id order, each with its
// dominant (most frequent) tag resolved deterministically (ties broken by
// tag ascending).
func (b *Builder) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	idToLemma := make([]string, b.nextID.Load())
	for lemma, id := range b.lemmaToID {
		idToLemma[id] = lemma
	}

	b.freqMu.Lock()
	defer b.freqMu.Unlock()
	out := make([]Entry, len(idToLemma))
	for id, lemma := range idToLemma {
		out[id] = Entry{
			Lemma:       lemma,
			Frequency:   b.freq[id],
			DominantTag: dominantTag(b.tags[id]),
		}
	}
	return out
}

// TotalFrequency returns sum(frequency[i] for i in [1,N)), matching the
// header's totalTokens invariant.
func (b *Builder) TotalFrequency() uint64 {
	b.freqMu.Lock()
	defer b.freqMu.Unlock()
	var sum uint64
	for i := 1; i < len(b.freq); i++ {
		sum += b.freq[i]
	}
	return sum
}

func dominantTag(counts map[string]uint64) string {
	if len(counts) == 0 {
		return ""
	}
	tags := make([]string, 0, len(counts))
	for t := range counts {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	best := tags[0]
	for _, t := range tags[1:] {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best
}
