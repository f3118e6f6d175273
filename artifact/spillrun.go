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
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// PairRecord is one (packed pair key, count, signed-distance accumulator)
// entry of a spill run. DistSum/DistN let the Stage B merge keep summing
// the running average distance across spill epochs instead of resetting
// it at each spill boundary.
type PairRecord struct {
	Key     int64
	Count   int32
	DistSum float64
	DistN   uint32
}

const spillRunHeaderSize = 4 + 4 + 4     // magic, version, recordCount
const spillRunRecordSize = 8 + 4 + 8 + 4 // key, count, distSum, distN

// WriteSpillRun writes records (already sorted ascending by Key) to path
// in the spill-run format: `magic, u32 version=1, u32 recordCount, {i64 key,
// i32 count, f64 distSum, u32 distN}[recordCount]`.
func WriteSpillRun(path string, records []PairRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create spill run: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriterSize(f, 64*1024)

	header := make([]byte, spillRunHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], SpillMagic)
	binary.LittleEndian.PutUint32(header[4:8], 1)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(records)))
	if _, err = w.Write(header); err != nil {
		return fmt.Errorf("failed to write spill run header: %w", err)
	}

	buf := make([]byte, spillRunRecordSize)
	for _, r := range records {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(r.Key))
		binary.LittleEndian.PutUint32(buf[8:12], uint32(r.Count))
		binary.LittleEndian.PutUint64(buf[12:20], math.Float64bits(r.DistSum))
		binary.LittleEndian.PutUint32(buf[20:24], r.DistN)
		if _, err = w.Write(buf); err != nil {
			return fmt.Errorf("failed to write spill run record: %w", err)
		}
	}
	return w.Flush()
}

// SpillRunReader streams records from a spill run file in ascending-key
// order, the shape Stage B's k-way merge needs.
type SpillRunReader struct {
	f           *os.File
	r           *bufio.Reader
	RecordCount int
	read        int
}

// OpenSpillRun opens path and validates its header.
func OpenSpillRun(path string) (*SpillRunReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill run: %w", err)
	}
	r := bufio.NewReaderSize(f, 64*1024)
	header := make([]byte, spillRunHeaderSize)
	if _, err := fullRead(r, header); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrCorruptSpillRun, err)
	}
	if binary.LittleEndian.Uint32(header[0:4]) != SpillMagic {
		f.Close()
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptSpillRun)
	}
	if binary.LittleEndian.Uint32(header[4:8]) != 1 {
		f.Close()
		return nil, fmt.Errorf("%w: unsupported version", ErrCorruptSpillRun)
	}
	count := binary.LittleEndian.Uint32(header[8:12])
	return &SpillRunReader{f: f, r: r, RecordCount: int(count)}, nil
}

// Next returns the next record, or (zero, false, nil) at EOF.
func (s *SpillRunReader) Next() (PairRecord, bool, error) {
	if s.read >= s.RecordCount {
		return PairRecord{}, false, nil
	}
	buf := make([]byte, spillRunRecordSize)
	if _, err := fullRead(s.r, buf); err != nil {
		return PairRecord{}, false, fmt.Errorf("%w: %v", ErrCorruptSpillRun, err)
	}
	s.read++
	return PairRecord{
		Key:     int64(binary.LittleEndian.Uint64(buf[0:8])),
		Count:   int32(binary.LittleEndian.Uint32(buf[8:12])),
		DistSum: math.Float64frombits(binary.LittleEndian.Uint64(buf[12:20])),
		DistN:   binary.LittleEndian.Uint32(buf[20:24]),
	}, true, nil
}

// Close releases the underlying file handle.
func (s *SpillRunReader) Close() error {
	return s.f.Close()
}

func fullRead(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
