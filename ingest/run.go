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
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tomachalek/vertigo/v6"
)

// Run parses each vertical file in order, feeding completed sentences to
// out, and closes out once every file has been processed or ctx is
// cancelled. Sentence IDs are assigned per Processor and are only unique
// within one Run call; a caller ingesting multiple corpora must offset
// them itself before persisting.
func Run(ctx context.Context, files []string, cfg Config, out chan<- Sentence) error {
	defer close(out)
	proc := NewProcessor(cfg, out)
	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		pConf := vertigo.ParserConf{
			InputFilePath:         f,
			Encoding:              "utf-8",
			StructAttrAccumulator: "comb",
			LogProgressEachNth:    100000,
		}
		log.Info().Str("file", f).Msg("ingesting vertical file")
		if err := vertigo.ParseVerticalFile(ctx, &pConf, proc); err != nil {
			return fmt.Errorf("ingest %s: %w", f, err)
		}
	}
	return nil
}
