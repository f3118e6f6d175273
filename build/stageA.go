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

package build

import (
	"context"
	"sync/atomic"

	"github.com/czcorpus/corpuscoll/lexicon"
	"github.com/czcorpus/corpuscoll/token"
	"golang.org/x/sync/errgroup"
)

// stageA fans sentences out across cfg.Threads workers, each resolving
// lemmas to ids via lex and emitting windowed co-occurrence pairs into
// shards. Both directions of a pair are emitted so every lemma gets to be
// the headword of its own collocations: (a,b,+dist) and (b,a,-dist).
//
// A sentence contributes nothing when it has fewer than two tokens; an
// empty lemma (id 0) never participates in a pair, matching the lexicon's
// reserved-id-0 convention.
func stageA(
	ctx context.Context,
	cfg Config,
	sentences <-chan token.Sentence,
	lex *lexicon.Builder,
	shards []*shard,
	stats *Stats,
) error {
	g, gctx := errgroup.WithContext(ctx)
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}

	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case sent, ok := <-sentences:
					if !ok {
						return nil
					}
					if err := processSentence(cfg, sent, lex, shards, stats); err != nil {
						return err
					}
				}
			}
		})
	}
	return g.Wait()
}

func processSentence(
	cfg Config,
	sent token.Sentence,
	lex *lexicon.Builder,
	shards []*shard,
	stats *Stats,
) error {
	if len(sent.Tokens) < 2 {
		atomic.AddInt64(&stats.SentencesSkippedTooShort, 1)
		return nil
	}

	ids := make([]uint32, len(sent.Tokens))
	for i, tok := range sent.Tokens {
		ids[i] = lex.Observe(tok.Lemma, tok.Tag)
	}

	for i, a := range ids {
		if a == lexicon.EmptyLemmaID {
			continue
		}
		upper := i + cfg.WindowSize
		if upper >= len(ids) {
			upper = len(ids) - 1
		}
		for j := i + 1; j <= upper; j++ {
			b := ids[j]
			if b == lexicon.EmptyLemmaID || b == a {
				continue
			}
			dist := float64(j - i)
			sA := shards[shardOf(a, cfg.Shards)]
			if err := sA.Add(packPair(a, b), dist); err != nil {
				return err
			}
			sB := shards[shardOf(b, cfg.Shards)]
			if err := sB.Add(packPair(b, a), -dist); err != nil {
				return err
			}
		}
	}

	atomic.AddInt64(&stats.SentencesProcessed, 1)
	return nil
}
