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

import "errors"

var (
	// ErrAlreadyInProgress is returned when a second builder tries to
	// take the exclusive lock on an output directory already held by a
	// running build.
	ErrAlreadyInProgress = errors.New("build already in progress for this output directory")

	// ErrCancelled is returned when the build's context is cancelled
	// mid-run.
	ErrCancelled = errors.New("build cancelled")

	// ErrCorruptInput names the undecodable-sentence failure mode. Build
	// consumes already-decoded token.Sentence values and has no blob
	// decoding step, so it never returns this error and
	// Stats.SentencesSkippedCorrupt always stays zero.
	ErrCorruptInput = errors.New("corrupt input sentence")
)

// Stats reports counters accumulated over a build run, surfaced to the
// caller (and the CLI) after completion.
type Stats struct {
	SentencesProcessed       int64
	SentencesSkippedCorrupt  int64
	SentencesSkippedTooShort int64
	HeadwordsWritten         int64
	HeadwordsSkippedLowFreq  int64
	InconsistentStatistics   int64
	Cancelled                bool
}
