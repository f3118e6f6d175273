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
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/czcorpus/corpuscoll/artifact"
)

// checkpointFileName is the resume side-car written alongside the
// in-progress artifact data file: a rolling count followed by the last
// durable data-file offset and the offset-table entries written so far.
// It is rewritten (not appended) every CheckpointEvery headwords and
// fsynced, so a crash between checkpoints loses at most one interval of
// work, never corrupts what's already durable.
const checkpointFileName = "checkpoint.bin"

func checkpointPath(workDir string) string {
	return filepath.Join(workDir, checkpointFileName)
}

func writeCheckpoint(path string, dataOffset int64, offsets []artifact.OffsetRecord) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file: %w", err)
	}
	w := bufio.NewWriter(f)

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], uint64(len(offsets)))
	if _, err := w.Write(u64[:]); err != nil {
		f.Close()
		return err
	}
	binary.LittleEndian.PutUint64(u64[:], uint64(dataOffset))
	if _, err := w.Write(u64[:]); err != nil {
		f.Close()
		return err
	}
	for _, o := range offsets {
		buf, err := artifact.EncodeOffsetRecord(o)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := w.Write(buf); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// readCheckpoint loads a previously written checkpoint. found is false
// (with a nil error) when no checkpoint file exists yet, the normal
// first-run case.
func readCheckpoint(path string) (dataOffset int64, offsets []artifact.OffsetRecord, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, false, nil
		}
		return 0, nil, false, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	if len(data) < 16 {
		return 0, nil, false, fmt.Errorf("%w: truncated checkpoint", artifact.ErrCorruptArtifact)
	}
	count := binary.LittleEndian.Uint64(data[0:8])
	dataOffset = int64(binary.LittleEndian.Uint64(data[8:16]))
	pos := 16
	offsets = make([]artifact.OffsetRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		o, n, err := artifact.DecodeOffsetRecord(data[pos:])
		if err != nil {
			return 0, nil, false, err
		}
		offsets = append(offsets, o)
		pos += n
	}
	return dataOffset, offsets, true, nil
}
