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
	"fmt"
	"os"
	"sync"
)

// Writer is the single append-only writer for the artifact data file,
// guarded by one lock so that contention is bounded to the append itself.
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	offset int64
}

// NewWriter creates (or truncates) path and reserves the fixed header
// region, to be filled in by Finalize once the entry count and offset
// table are known.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact data file: %w", err)
	}
	if _, err := f.Write(make([]byte, HeaderSize)); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write artifact header placeholder: %w", err)
	}
	return &Writer{f: f, offset: HeaderSize}, nil
}

// OpenWriterForResume reopens an existing partial data file for append,
// positioning the writer at resumeOffset (the last checkpointed, fsynced
// byte) and truncating anything beyond it.
func OpenWriterForResume(path string, resumeOffset int64) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen artifact data file: %w", err)
	}
	if err := f.Truncate(resumeOffset); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to truncate artifact data file: %w", err)
	}
	if _, err := f.Seek(resumeOffset, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek artifact data file: %w", err)
	}
	return &Writer{f: f, offset: resumeOffset}, nil
}

// AppendEntry encodes and appends entry, returning the file offset it was
// written at (used both for the offset table and for crash-resumability
// bookkeeping).
func (w *Writer) AppendEntry(entry CollocationEntry) (int64, error) {
	buf, err := EncodeEntry(entry)
	if err != nil {
		return 0, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	off := w.offset
	n, err := w.f.Write(buf)
	if err != nil {
		return 0, fmt.Errorf("failed to append artifact entry: %w", err)
	}
	w.offset += int64(n)
	return off, nil
}

// Sync flushes the data file to stable storage, used by the resume
// checkpoint protocol.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Sync()
}

// Offset returns the current append position.
func (w *Writer) Offset() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

// Finalize appends the offset table after the last entry, then rewrites
// the header with the final entryCount/offsetTableStart/offsetTableSize,
// and closes the file.
func (w *Writer) Finalize(windowSize, topK uint32, totalTokens uint64, offsets []OffsetRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tableStart := w.offset
	var tableSize int64
	for _, o := range offsets {
		buf, err := EncodeOffsetRecord(o)
		if err != nil {
			return err
		}
		n, err := w.f.Write(buf)
		if err != nil {
			return fmt.Errorf("failed to write offset table: %w", err)
		}
		tableSize += int64(n)
	}
	w.offset = tableStart + tableSize

	header := EncodeHeader(Header{
		Magic:            Magic,
		Version:          formatVersion,
		EntryCount:       uint32(len(offsets)),
		WindowSize:       windowSize,
		TopK:             topK,
		TotalTokens:      totalTokens,
		OffsetTableStart: uint64(tableStart),
		OffsetTableSize:  uint64(tableSize),
	})
	if _, err := w.f.WriteAt(header, 0); err != nil {
		return fmt.Errorf("failed to write artifact header: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("failed to fsync artifact: %w", err)
	}
	return w.f.Close()
}

// Close closes the underlying file without finalizing it. Used when a
// build is interrupted before completion.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
