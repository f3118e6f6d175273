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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/czcorpus/corpuscoll/lexicon"
	"github.com/czcorpus/corpuscoll/token"
	"github.com/rs/zerolog/log"
)

const lockFileName = ".build.lock"

// Build runs the full single-pass collocations pipeline against sentences,
// writing the resulting artifact to cfg.OutputPath. It owns cfg.WorkDir
// exclusively for the duration of the run (ErrAlreadyInProgress if another
// build already holds it).
//
// Stage A/B are always executed in full against the supplied sentence
// stream: they are deterministic and idempotent, and cheap relative to the
// disk I/O Stage C performs. What resume actually buys is Stage C: the
// durable data-file offset and the written-headword set are checkpointed,
// so a restart truncates the data file back to the last fsynced point and
// skips re-appending headwords already durable, rather than re-running
// the whole write phase.
func Build(ctx context.Context, cfg Config, sentences <-chan token.Sentence) (Stats, error) {
	var stats Stats
	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		return stats, fmt.Errorf("failed to create work directory: %w", err)
	}

	lockPath := filepath.Join(cfg.WorkDir, lockFileName)
	if cfg.Resume {
		_ = os.Remove(lockPath)
	}
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return stats, ErrAlreadyInProgress
		}
		return stats, fmt.Errorf("failed to acquire build lock: %w", err)
	}
	defer func() {
		lockFile.Close()
		os.Remove(lockPath)
	}()

	shards := make([]*shard, cfg.Shards)
	for i := range shards {
		shards[i] = newShard(i, cfg.WorkDir, cfg.SpillThreshold)
	}

	lex := lexicon.NewBuilder()
	log.Info().Int("threads", cfg.Threads).Int("shards", cfg.Shards).Msg("starting stage A")
	if err := stageA(ctx, cfg, sentences, lex, shards, &stats); err != nil {
		if errors.Is(err, context.Canceled) {
			stats.Cancelled = true
			return stats, ErrCancelled
		}
		return stats, fmt.Errorf("stage A failed: %w", err)
	}
	for _, s := range shards {
		if err := s.ForceSpillIfNonEmpty(); err != nil {
			return stats, fmt.Errorf("flushing shard %d: %w", s.idx, err)
		}
	}

	entries := lex.Entries()
	totalTokens := lex.TotalFrequency()

	var resumeOffsets []artifact.OffsetRecord
	var resumeDataOffset int64
	resumed := false
	if cfg.Resume {
		off, recs, found, err := readCheckpoint(checkpointPath(cfg.WorkDir))
		if err != nil {
			return stats, fmt.Errorf("failed to read checkpoint: %w", err)
		}
		if found {
			resumeDataOffset, resumeOffsets, resumed = off, recs, true
		}
	}

	var writer *artifact.Writer
	if resumed {
		writer, err = artifact.OpenWriterForResume(cfg.OutputPath, resumeDataOffset)
	} else {
		writer, err = artifact.NewWriter(cfg.OutputPath)
	}
	if err != nil {
		return stats, fmt.Errorf("failed to open artifact writer: %w", err)
	}

	written := make(map[string]bool, len(resumeOffsets))
	offsets := make([]artifact.OffsetRecord, 0, len(resumeOffsets))
	offsets = append(offsets, resumeOffsets...)
	for _, o := range resumeOffsets {
		written[o.Headword] = true
	}

	log.Info().Msg("starting stage B/C")
	sinceCheckpoint := 0
	for _, s := range shards {
		select {
		case <-ctx.Done():
			writer.Close()
			stats.Cancelled = true
			return stats, ErrCancelled
		default:
		}

		merged, err := mergedShard(s, uint32(cfg.MinCooccurrence))
		if err != nil {
			writer.Close()
			return stats, fmt.Errorf("merging shard %d: %w", s.idx, err)
		}
		reduced := reduceShard(cfg, merged, entries, totalTokens, &stats)
		for _, entry := range reduced {
			if written[entry.Headword] {
				continue
			}
			off, err := writer.AppendEntry(entry)
			if err != nil {
				writer.Close()
				return stats, fmt.Errorf("appending entry %q: %w", entry.Headword, err)
			}
			offsets = append(offsets, artifact.OffsetRecord{Headword: entry.Headword, FileOffset: off})
			written[entry.Headword] = true
			sinceCheckpoint++

			if sinceCheckpoint >= cfg.CheckpointEvery {
				if err := writer.Sync(); err != nil {
					writer.Close()
					return stats, fmt.Errorf("checkpoint sync: %w", err)
				}
				if err := writeCheckpoint(checkpointPath(cfg.WorkDir), writer.Offset(), offsets); err != nil {
					writer.Close()
					return stats, fmt.Errorf("writing checkpoint: %w", err)
				}
				sinceCheckpoint = 0
			}
		}
	}

	if err := writer.Finalize(uint32(cfg.WindowSize), uint32(cfg.TopK), totalTokens, offsets); err != nil {
		return stats, fmt.Errorf("finalizing artifact: %w", err)
	}
	_ = os.Remove(checkpointPath(cfg.WorkDir))
	log.Info().Int64("headwords", stats.HeadwordsWritten).Msg("build complete")
	return stats, nil
}
