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

package artifact

import (
	"encoding/binary"
	"fmt"
)

// EncodeHeader serializes h into the fixed 64-byte header layout.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.EntryCount)
	binary.LittleEndian.PutUint32(buf[12:16], h.WindowSize)
	binary.LittleEndian.PutUint32(buf[16:20], h.TopK)
	binary.LittleEndian.PutUint64(buf[20:28], h.TotalTokens)
	binary.LittleEndian.PutUint64(buf[28:36], h.OffsetTableStart)
	binary.LittleEndian.PutUint64(buf[36:44], h.OffsetTableSize)
	// bytes [44:64) remain zero (reserved)
	return buf
}

// DecodeHeader parses and validates the fixed header, rejecting bad magic
// or an unsupported version.
func DecodeHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: truncated header", ErrCorruptArtifact)
	}
	h.Magic = binary.LittleEndian.Uint32(data[0:4])
	if h.Magic != Magic {
		return h, fmt.Errorf("%w: bad magic", ErrCorruptArtifact)
	}
	h.Version = binary.LittleEndian.Uint32(data[4:8])
	if h.Version != formatVersion {
		return h, fmt.Errorf("%w: unsupported version %d", ErrCorruptArtifact, h.Version)
	}
	h.EntryCount = binary.LittleEndian.Uint32(data[8:12])
	h.WindowSize = binary.LittleEndian.Uint32(data[12:16])
	h.TopK = binary.LittleEndian.Uint32(data[16:20])
	h.TotalTokens = binary.LittleEndian.Uint64(data[20:28])
	h.OffsetTableStart = binary.LittleEndian.Uint64(data[28:36])
	h.OffsetTableSize = binary.LittleEndian.Uint64(data[36:44])
	return h, nil
}
