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
	"fmt"
	"os"

	"github.com/czcorpus/corpuscoll/build"
	"github.com/czcorpus/corpuscoll/ingest"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional on-disk override document for repeatable
// builds against a fixed corpus layout, so column indices and tuning
// don't have to be respelled as flags every run. CLI flags still win over
// whatever it sets (zero fields here mean "unset").
type fileConfig struct {
	LemmaIdx        int `yaml:"lemmaIdx"`
	UPosIdx         int `yaml:"uposIdx"`
	XPosIdx         int `yaml:"xposIdx"`
	ParentIdx       int `yaml:"parentIdx"`
	DeprelIdx       int `yaml:"deprelIdx"`
	Window          int `yaml:"window"`
	TopK            int `yaml:"topK"`
	MinFreq         int `yaml:"minFreq"`
	MinCooccurrence int `yaml:"minCooccurrence"`
	Threads         int `yaml:"threads"`
	Shards          int `yaml:"shards"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// applyTo folds non-zero fields of fc into ingestCfg/buildCfg, treated as
// the base the CLI flags then override.
func (fc fileConfig) applyTo(ingestCfg *ingest.Config, buildCfg *build.Config) {
	if fc.LemmaIdx != 0 {
		ingestCfg.LemmaIdx = fc.LemmaIdx
	}
	if fc.UPosIdx != 0 {
		ingestCfg.UPosIdx = fc.UPosIdx
	}
	if fc.XPosIdx != 0 {
		ingestCfg.XPosIdx = fc.XPosIdx
		ingestCfg.TagIdx = fc.XPosIdx
	}
	if fc.ParentIdx != 0 {
		ingestCfg.ParentIdx = fc.ParentIdx
	}
	if fc.DeprelIdx != 0 {
		ingestCfg.DeprelIdx = fc.DeprelIdx
	}
	if fc.Window != 0 {
		buildCfg.WindowSize = fc.Window
	}
	if fc.TopK != 0 {
		buildCfg.TopK = fc.TopK
	}
	if fc.MinFreq != 0 {
		buildCfg.MinFrequency = uint64(fc.MinFreq)
	}
	if fc.MinCooccurrence != 0 {
		buildCfg.MinCooccurrence = uint32(fc.MinCooccurrence)
	}
	if fc.Threads != 0 {
		buildCfg.Threads = fc.Threads
	}
	if fc.Shards != 0 {
		buildCfg.Shards = fc.Shards
	}
}
