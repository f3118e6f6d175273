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

// Command collbuild streams a vertical-format, dependency-tagged corpus
// through the ingestion adapter and the single-pass collocations builder,
// producing a collocations artifact, a term-statistics store and a span
// store in one pass.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/corpuscoll/build"
	"github.com/czcorpus/corpuscoll/ingest"
	"github.com/czcorpus/corpuscoll/spanengine/badgerref"
	"github.com/czcorpus/corpuscoll/termstats"
	"github.com/czcorpus/corpuscoll/token"
	"github.com/rs/zerolog/log"
)

func determineFilesToProc(path string) ([]string, error) {
	isDir, err := fs.IsDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to determine files to process: %w", err)
	}
	if !isDir {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory contents: %w", err)
	}
	ans := make([]string, 0, len(entries))
	for _, entry := range entries {
		ans = append(ans, filepath.Join(path, entry.Name()))
	}
	return ans, nil
}

// fanOut reads ingest.Sentence off raw, folding each into termStats and
// the span store as it passes, and forwards the token.Sentence projection
// to toBuild for the collocations builder to consume. toBuild is closed
// once raw is drained or closed.
func fanOut(raw <-chan ingest.Sentence, toBuild chan<- token.Sentence, termStats *termstats.Builder, spans *badgerref.Store) {
	defer close(toBuild)
	for sent := range raw {
		plain := sent.ToTokenSentence()
		termStats.ObserveSentence(plain)
		if err := spans.PutSentence(sent.ToAnnotatedSentence()); err != nil {
			log.Error().Err(err).Int64("sentenceId", sent.ID).Msg("failed to persist annotated sentence")
		}
		toBuild <- plain
	}
}

func main() {
	window := flag.Int("window", 0, "co-occurrence window size (0 = use default)")
	topK := flag.Int("top-k", 0, "max retained collocates per headword (0 = use default)")
	minFreq := flag.Uint64("min-freq", 0, "minimum headword frequency (0 = use default)")
	minCooc := flag.Uint("min-cooc", 0, "minimum pair co-occurrence count (0 = use default)")
	threads := flag.Int("threads", 0, "stage A worker pool size (0 = use default)")
	shards := flag.Int("shards", 0, "number of in-memory pair-count partitions (0 = use default)")
	spill := flag.Int("spill", 0, "max distinct pairs per shard before spilling (0 = use default)")
	checkpoint := flag.Int("checkpoint", 0, "headwords written between resume checkpoints (0 = use default)")
	resume := flag.Bool("resume", false, "reuse an in-progress build's partial output if present")
	lemmaIdx := flag.Int("lemma-idx", ingest.DefaultConfig().LemmaIdx, "vertical file column index of the lemma attribute")
	uposIdx := flag.Int("upos-idx", ingest.DefaultConfig().UPosIdx, "vertical file column index of the coarse (universal) PoS attribute")
	xposIdx := flag.Int("xpos-idx", ingest.DefaultConfig().XPosIdx, "vertical file column index of the fine-grained PoS/tag attribute")
	parentIdx := flag.Int("parent-idx", ingest.DefaultConfig().ParentIdx, "vertical file column index of the dependency parent offset")
	deprelIdx := flag.Int("deprel-idx", ingest.DefaultConfig().DeprelIdx, "vertical file column index of the dependency relation label")
	configFile := flag.String("config", "", "optional YAML file with column layout and tuning overrides (flags still take precedence)")
	logLevel := flag.String("log-level", "info", "set log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "collbuild - build a collocations database from a dependency-tagged vertical corpus\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [options] <indexPath> <outputPath>\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logging.SetupLogging(logging.LoggingConf{
		Level: logging.LogLevel(*logLevel),
	})

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}
	indexPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: ", err)
		os.Exit(2)
	}

	files, err := determineFilesToProc(indexPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: ", err)
		os.Exit(2)
	}

	buildCfg := build.DefaultConfig()
	ingestCfgBase := ingest.DefaultConfig()
	if *configFile != "" {
		fc, err := loadFileConfig(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR: ", err)
			os.Exit(1)
		}
		fc.applyTo(&ingestCfgBase, &buildCfg)
	}
	if *window > 0 {
		buildCfg.WindowSize = *window
	}
	if *topK > 0 {
		buildCfg.TopK = *topK
	}
	if *minFreq > 0 {
		buildCfg.MinFrequency = *minFreq
	}
	if *minCooc > 0 {
		buildCfg.MinCooccurrence = uint32(*minCooc)
	}
	if *threads > 0 {
		buildCfg.Threads = *threads
	}
	if *shards > 0 {
		buildCfg.Shards = *shards
	}
	if *spill > 0 {
		buildCfg.SpillThreshold = *spill
	}
	if *checkpoint > 0 {
		buildCfg.CheckpointEvery = *checkpoint
	}
	buildCfg.Resume = *resume
	buildCfg.WorkDir = filepath.Join(outputPath, ".work")
	buildCfg.OutputPath = filepath.Join(outputPath, "collocations.bin")

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	ingestCfg := ingestCfgBase
	if setFlags["lemma-idx"] {
		ingestCfg.LemmaIdx = *lemmaIdx
	}
	if setFlags["upos-idx"] {
		ingestCfg.UPosIdx = *uposIdx
	}
	if setFlags["xpos-idx"] {
		ingestCfg.XPosIdx = *xposIdx
		ingestCfg.TagIdx = *xposIdx
	}
	if setFlags["parent-idx"] {
		ingestCfg.ParentIdx = *parentIdx
	}
	if setFlags["deprel-idx"] {
		ingestCfg.DeprelIdx = *deprelIdx
	}

	spanStore, err := badgerref.Open(filepath.Join(outputPath, "spans"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: failed to open span store: ", err)
		os.Exit(2)
	}
	defer spanStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rawSentences := make(chan ingest.Sentence, 64)
	toBuild := make(chan token.Sentence, 64)
	termBuilder := termstats.NewBuilder()

	ingestErrCh := make(chan error, 1)
	go func() {
		ingestErrCh <- ingest.Run(ctx, files, ingestCfg, rawSentences)
	}()
	go fanOut(rawSentences, toBuild, termBuilder, spanStore)

	stats, buildErr := build.Build(ctx, buildCfg, toBuild)
	ingestErr := <-ingestErrCh

	log.Info().
		Int64("sentencesProcessed", stats.SentencesProcessed).
		Int64("headwordsWritten", stats.HeadwordsWritten).
		Msg("build finished")

	if err := termstats.Write(
		filepath.Join(outputPath, "termstats.bin"),
		termBuilder.Records(),
		termBuilder.TotalTokens(),
		termBuilder.TotalSentences(),
	); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: failed to write term statistics: ", err)
		os.Exit(2)
	}

	switch {
	case errors.Is(buildErr, build.ErrCancelled) || errors.Is(ingestErr, context.Canceled):
		fmt.Fprintln(os.Stderr, "cancelled")
		os.Exit(130)
	case ingestErr != nil:
		fmt.Fprintln(os.Stderr, "ERROR: ", ingestErr)
		os.Exit(3)
	case buildErr != nil:
		fmt.Fprintln(os.Stderr, "ERROR: ", buildErr)
		os.Exit(2)
	}
}
