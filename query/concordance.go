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

import (
	"context"
	"fmt"
	"strings"

	"github.com/czcorpus/corpuscoll/pattern"
	"github.com/czcorpus/corpuscoll/token"
)

// ConcordanceLine is one plain-text match, already trimmed to the single
// sentence it occurred in.
type ConcordanceLine struct {
	SentenceID int64
	Text       string
	MatchStart int
	MatchEnd   int
}

// ExtractConcordance substitutes both word1 (at headPosition) and word2
// (at collocatePosition) into relationID's pattern, executes it, and
// returns up to cap plain-text lines. Each line's sentence comes
// pre-trimmed from the span engine (badgerref.Engine.Concordance
// resolves exactly the containing sentence), so no separate <s>/</s>
// boundary scan is needed here.
func (d *Dispatcher) ExtractConcordance(ctx context.Context, word1, word2, relationID string, cap int) ([]ConcordanceLine, error) {
	def, ok := d.lookupRelation(relationID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelation, relationID)
	}

	p, err := pattern.Parse(def.Pattern)
	if err != nil {
		return nil, fmt.Errorf("relation %q: %w", def.ID, err)
	}
	withHead, err := pattern.Substitute(p, def.HeadPosition, word1)
	if err != nil {
		return nil, fmt.Errorf("relation %q: %w", def.ID, err)
	}
	withBoth, err := pattern.Substitute(withHead, def.CollocatePosition, word2)
	if err != nil {
		return nil, fmt.Errorf("relation %q: %w", def.ID, err)
	}
	q := pattern.Compile(withBoth)

	it, err := d.Engine.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var lines []ConcordanceLine
	for {
		select {
		case <-ctx.Done():
			return lines, nil
		default:
		}
		if cap > 0 && len(lines) >= cap {
			break
		}
		hit, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		sent, err := d.Engine.Concordance(ctx, hit)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ConcordanceLine{
			SentenceID: sent.ID,
			Text:       renderPlainText(sent),
			MatchStart: hit.Start,
			MatchEnd:   hit.End,
		})
	}
	return lines, nil
}

func renderPlainText(sent token.Sentence) string {
	words := make([]string, len(sent.Tokens))
	for i, t := range sent.Tokens {
		words[i] = t.Word
	}
	return strings.Join(words, " ")
}
