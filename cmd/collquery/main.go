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

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/corpuscoll/artifact"
	"github.com/czcorpus/corpuscoll/query"
	"github.com/czcorpus/corpuscoll/relation"
	"github.com/czcorpus/corpuscoll/spanengine/badgerref"
	"github.com/czcorpus/corpuscoll/termstats"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

type srchCommand struct {
	lemma    string
	relation string
}

func evalREPLCommand(cmd string) srchCommand {
	items := strings.Split(strings.TrimSpace(cmd), " ")
	ans := srchCommand{lemma: items[0]}
	if len(items) > 1 && items[1] != "-" {
		ans.relation = items[1]
	}
	return ans
}

func openDispatcher(dbDir string, relationsPath string) (*query.Dispatcher, error) {
	d := &query.Dispatcher{}

	art, err := artifact.Open(filepath.Join(dbDir, "collocations.bin"))
	if err == nil {
		d.Artifact = art
	}

	stats, err := termstats.Open(filepath.Join(dbDir, "termstats.bin"))
	if err == nil {
		d.Stats = stats
	}

	store, err := badgerref.Open(filepath.Join(dbDir, "spans"))
	if err != nil {
		return nil, fmt.Errorf("open span store: %w", err)
	}
	d.Engine = badgerref.NewEngine(store)

	if relationsPath != "" {
		data, err := os.ReadFile(relationsPath)
		if err != nil {
			return nil, fmt.Errorf("read relation config: %w", err)
		}
		cfg, err := relation.LoadConfig(data)
		if err != nil {
			return nil, fmt.Errorf("load relation config: %w", err)
		}
		d.Relations = cfg
	}

	return d, nil
}

func main() {
	limit := flag.Int("limit", 10, "max num. of matching items to show")
	sortBy := flag.String("sort-by", "rrf", "sorting measure (logDice, mi3, tScore, logLikelihood, rrf)")
	minScore := flag.Float64("min-score", 0, "minimum score (on the sort-by measure) a collocate must reach")
	minCooc := flag.Uint64("min-cooc", 0, "minimum raw co-occurrence count a collocate must reach")
	pos := flag.String("pos", "", "restrict collocates to this coarse PoS tag")
	relationsPath := flag.String("relations", "", "path to a relation configuration document (JSON)")
	jsonOut := flag.Bool("json-out", false, "if set then JSON format will be used to print results")
	logLevel := flag.String("log-level", "info", "set log level (debug, info, warn, error)")
	repl := flag.Bool("repl", false, "if set, then the search will run in an infinite read-eval-print loop (until Ctrl+C is pressed)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "collquery - look up collocations of a lemma against a built collocations database\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [options] [db_dir] [lemma] [relation]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logging.SetupLogging(logging.LoggingConf{
		Level: logging.LogLevel(*logLevel),
	})

	sm := query.SortingMeasure(*sortBy)
	if !sm.Validate() {
		fmt.Fprintf(os.Stderr, "ERROR: unknown sort-by measure: %s\n", *sortBy)
		os.Exit(1)
	}

	dispatcher, err := openDispatcher(flag.Arg(0), *relationsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: ", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdReader := bufio.NewReader(os.Stdin)

	currCommand := srchCommand{
		lemma:    flag.Arg(1),
		relation: flag.Arg(2),
	}
	if currCommand.relation == "" {
		currCommand.relation = relation.Window
	}

	for {
		if *repl && currCommand.lemma == "" {
			fmt.Println("\nenter a query (lemma [optional relation id]):")
			cmdChan := make(chan string, 1)
			go func() {
				cmd, _ := cmdReader.ReadString('\n')
				cmdChan <- cmd
			}()

			select {
			case <-ctx.Done():
				fmt.Println("\nExiting...")
				return
			case cmd := <-cmdChan:
				currCommand = evalREPLCommand(cmd)
				if currCommand.relation == "" {
					currCommand.relation = relation.Window
				}
			}
		}

		if currCommand.lemma == "" {
			fmt.Println("no query entered")
			continue
		}

		res, err := dispatcher.GetCollocations(
			ctx,
			currCommand.lemma,
			currCommand.relation,
			query.WithLimit(*limit),
			query.WithSortBy(sm),
			query.WithMinScore(*minScore),
			query.WithMinCooccurrence(*minCooc),
			query.WithPoS(*pos),
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR: ", err)
			if !*repl {
				os.Exit(1)
			}
		} else if *jsonOut {
			for _, item := range res.Collocations {
				out, err := json.Marshal(item)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to json-encode value: %s", err)
					os.Exit(1)
				}
				fmt.Println(string(out))
			}

		} else {
			fmt.Println()
			if len(res.Collocations) > 0 {
				headerFmt := color.New(color.FgGreen).SprintfFunc()
				columnFmt := color.New(color.FgHiMagenta).SprintfFunc()

				tbl := table.New(
					"lemma",
					"pos",
					"cooccurrence",
					"T-Score",
					"Log-Dice",
					"MI3",
					"LL",
					"RRF",
				)
				tbl.
					WithHeaderFormatter(headerFmt).
					WithFirstColumnFormatter(columnFmt).
					WithHeaderSeparatorRow('═')
				for _, item := range res.Collocations {
					tbl.AddRow(item.AsRow()...)
				}
				tbl.Print()

			} else {
				fmt.Println("-- NO RESULT --")
			}
			if res.Cancelled {
				fmt.Println("(request was cancelled before it finished; results are partial)")
			}
		}

		if *repl {
			currCommand = srchCommand{}

		} else {
			return
		}
	}
}
