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

package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	slotRe       = regexp.MustCompile(`\[([^\]]*)\](?:~\{(\d+),(\d+)\})?`)
	constraintRe = regexp.MustCompile(`^\s*(\w+)\s*(!=|=)\s*"([^"]*)"\s*$`)
	validFields  = map[string]bool{
		"lemma": true, "word": true, "tag": true, "upos": true, "xpos": true, "deprel": true,
	}
)

// Parse parses a pattern-language source string into a Pattern.
func Parse(src string) (*Pattern, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	matches := slotRe.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no token slots found", ErrInvalidPattern)
	}
	if err := checkNoGaps(src, matches); err != nil {
		return nil, err
	}

	p := &Pattern{Slots: make([]Slot, 0, len(matches))}
	for _, m := range matches {
		content := src[m[2]:m[3]]
		slot, err := parseSlotContent(content)
		if err != nil {
			return nil, err
		}
		if m[4] != -1 {
			minV, _ := strconv.Atoi(src[m[4]:m[5]])
			maxV, _ := strconv.Atoi(src[m[6]:m[7]])
			if minV > maxV {
				return nil, fmt.Errorf("%w: gap min %d exceeds max %d", ErrInvalidPattern, minV, maxV)
			}
			slot.HasGap = true
			slot.GapMin = minV
			slot.GapMax = maxV
		}
		p.Slots = append(p.Slots, slot)
	}
	return p, nil
}

// checkNoGaps rejects any non-whitespace text between recognized slots,
// which would indicate a malformed bracket group the regex skipped over.
func checkNoGaps(src string, matches [][]int) error {
	cursor := 0
	for _, m := range matches {
		if strings.TrimSpace(src[cursor:m[0]]) != "" {
			return fmt.Errorf("%w: unexpected text %q", ErrInvalidPattern, src[cursor:m[0]])
		}
		cursor = m[1]
	}
	if strings.TrimSpace(src[cursor:]) != "" {
		return fmt.Errorf("%w: unexpected trailing text %q", ErrInvalidPattern, src[cursor:])
	}
	return nil
}

func parseSlotContent(content string) (Slot, error) {
	var slot Slot
	parts := strings.Split(content, "&")
	for _, part := range parts {
		c, err := parseConstraint(part)
		if err != nil {
			return Slot{}, err
		}
		slot.Constraints = append(slot.Constraints, c)
	}
	if len(slot.Constraints) == 0 {
		return Slot{}, fmt.Errorf("%w: empty token slot", ErrInvalidPattern)
	}
	return slot, nil
}

func parseConstraint(src string) (Constraint, error) {
	m := constraintRe.FindStringSubmatch(src)
	if m == nil {
		return Constraint{}, fmt.Errorf("%w: malformed constraint %q", ErrInvalidPattern, src)
	}
	field, op, value := m[1], m[2], m[3]
	if !validFields[field] {
		return Constraint{}, fmt.Errorf("%w: unknown field %q", ErrInvalidPattern, field)
	}
	return Constraint{Field: field, Op: op, Value: value}, nil
}
