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

package relation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidConfig is returned for any relation-configuration validation
// failure; it is fatal at load time, never recovered mid-run.
var ErrInvalidConfig = errors.New("invalid relation configuration")

var slotPattern = regexp.MustCompile(`\[[^\]]*\]`)

// LoadConfig parses and validates a relation configuration document:
// version non-empty, no top-level `copulas` key, no `{head}`
// placeholder in any pattern, slot-count/position bounds, unique ids.
func LoadConfig(data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, ok := raw["copulas"]; ok {
		return nil, fmt.Errorf("%w: top-level \"copulas\" key must be absent", ErrInvalidConfig)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("%w: version must be non-empty", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(cfg.Relations))
	for _, d := range cfg.Relations {
		if err := validateDefinition(d, seen); err != nil {
			return nil, err
		}
		seen[d.ID] = true
	}
	return &cfg, nil
}

func validateDefinition(d Definition, seen map[string]bool) error {
	if d.ID == "" {
		return fmt.Errorf("%w: relation id must be non-empty", ErrInvalidConfig)
	}
	if seen[d.ID] {
		return fmt.Errorf("%w: duplicate relation id %q", ErrInvalidConfig, d.ID)
	}
	if strings.TrimSpace(d.Pattern) == "" {
		return fmt.Errorf("%w: relation %q: pattern must be non-empty", ErrInvalidConfig, d.ID)
	}
	if strings.Contains(d.Pattern, "{head}") {
		return fmt.Errorf("%w: relation %q: pattern must not contain {head}", ErrInvalidConfig, d.ID)
	}

	slots := slotPattern.FindAllString(d.Pattern, -1)
	tokenCount := len(slots)
	if tokenCount < 2 {
		return fmt.Errorf("%w: relation %q: pattern must have at least 2 token slots, found %d",
			ErrInvalidConfig, d.ID, tokenCount)
	}
	if d.HeadPosition < 1 || d.HeadPosition > tokenCount {
		return fmt.Errorf("%w: relation %q: head_position %d out of range [1,%d]",
			ErrInvalidConfig, d.ID, d.HeadPosition, tokenCount)
	}
	if d.CollocatePosition < 1 || d.CollocatePosition > tokenCount {
		return fmt.Errorf("%w: relation %q: collocate_position %d out of range [1,%d]",
			ErrInvalidConfig, d.ID, d.CollocatePosition, tokenCount)
	}
	if d.HeadPosition == d.CollocatePosition {
		return fmt.Errorf("%w: relation %q: head_position and collocate_position must differ",
			ErrInvalidConfig, d.ID)
	}
	return nil
}
