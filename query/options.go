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

// Options controls one GetCollocations call. The call starts from the
// default request (top 20 by logDice, no filtering beyond the relation
// itself) and applies the passed Option values to it; a Limit of 0 means
// no cap.
type Options struct {
	Limit           int
	MinScore        float64
	MinCooccurrence uint64
	PoS             string
	SortBy          SortingMeasure
}

// Option mutates an Options in place; applied in the order passed to
// GetCollocations.
type Option func(*Options)

func defaultOptions() Options {
	return Options{Limit: 20, SortBy: SortByLogDice}
}

// WithLimit caps the number of returned collocates.
func WithLimit(n int) Option {
	return func(o *Options) { o.Limit = n }
}

// WithMinScore discards collocates whose logDice falls below v.
func WithMinScore(v float64) Option {
	return func(o *Options) { o.MinScore = v }
}

// WithMinCooccurrence discards collocate groups smaller than n.
func WithMinCooccurrence(n uint64) Option {
	return func(o *Options) { o.MinCooccurrence = n }
}

// WithPoS restricts results to collocates whose coarse part of speech
// equals pos, applied uniformly whether the request resolved via the
// artifact fast path or live pattern execution.
func WithPoS(pos string) Option {
	return func(o *Options) { o.PoS = pos }
}

// WithSortBy changes which measure drives descending order (lemma
// ascending still breaks ties); the artifact's own stored order is
// always logDice, so a non-default measure forces a re-sort.
func WithSortBy(measure SortingMeasure) Option {
	return func(o *Options) { o.SortBy = measure }
}
