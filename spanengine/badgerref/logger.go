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

package badgerref

import "github.com/rs/zerolog/log"

// zerologLogger adapts badger's logging interface onto the process-wide
// zerolog logger, so the span engine's storage layer logs through the
// same sink as everything else.
type zerologLogger struct{}

func (zerologLogger) Errorf(format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}

func (zerologLogger) Warningf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func (zerologLogger) Infof(format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func (zerologLogger) Debugf(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
