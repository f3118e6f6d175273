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

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	sentPrefix = "sent:"
	freqPrefix = "freq:"
)

// Store wraps a BadgerDB database holding fully annotated sentences plus
// per-field frequency counters.
type Store struct {
	bdb *badger.DB
}

// Open opens (creating if absent) a badgerref store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(zerologLogger{})
	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open span engine store: %w", err)
	}
	return &Store{bdb: bdb}, nil
}

// Close closes the underlying database. Safe on a nil *Store.
func (s *Store) Close() error {
	if s == nil || s.bdb == nil {
		return nil
	}
	return s.bdb.Close()
}

func sentKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", sentPrefix, id))
}

func freqKey(field, value string) []byte {
	return []byte(freqPrefix + field + ":" + strings.ToLower(value))
}

// PutSentence stores sent and updates the lemma/word frequency counters
// for all its tokens.
func (s *Store) PutSentence(sent AnnotatedSentence) error {
	blob, err := encodeSentence(sent)
	if err != nil {
		return fmt.Errorf("failed to encode sentence %d: %w", sent.ID, err)
	}
	return s.bdb.Update(func(txn *badger.Txn) error {
		if err := txn.Set(sentKey(sent.ID), blob); err != nil {
			return err
		}
		for _, tok := range sent.Tokens {
			if err := incrCounter(txn, freqKey("lemma", tok.Lemma)); err != nil {
				return err
			}
			if err := incrCounter(txn, freqKey("word", tok.Word)); err != nil {
				return err
			}
		}
		return nil
	})
}

func incrCounter(txn *badger.Txn, key []byte) error {
	var cur uint64
	item, err := txn.Get(key)
	if err == nil {
		if err := item.Value(func(val []byte) error {
			cur = binary.LittleEndian.Uint64(val)
			return nil
		}); err != nil {
			return err
		}
	} else if err != badger.ErrKeyNotFound {
		return err
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, cur+1)
	return txn.Set(key, buf)
}

// GetFrequency returns the stored counter for field/value, or 0 if unseen.
func (s *Store) GetFrequency(field, value string) (uint64, error) {
	var freq uint64
	err := s.bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get(freqKey(field, value))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			freq = binary.LittleEndian.Uint64(val)
			return nil
		})
	})
	return freq, err
}

// GetSentence fetches one sentence by id.
func (s *Store) GetSentence(id int64) (AnnotatedSentence, error) {
	var sent AnnotatedSentence
	err := s.bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sentKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			sent, err = decodeSentence(val)
			return err
		})
	})
	return sent, err
}

// ForEachSentence streams every stored sentence to fn in key order,
// stopping early if fn returns false.
func (s *Store) ForEachSentence(fn func(AnnotatedSentence) (bool, error)) error {
	return s.bdb.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(sentPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sent AnnotatedSentence
			if err := it.Item().Value(func(val []byte) error {
				var err error
				sent, err = decodeSentence(val)
				return err
			}); err != nil {
				return err
			}
			cont, err := fn(sent)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
		return nil
	})
}
