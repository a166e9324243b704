// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/chunkit/ledger"
)

// Ledger implements ledger.Ledger on BadgerDB.
type Ledger struct {
	backend *backend
	closed  atomic.Bool
}

var _ ledger.Ledger = (*Ledger)(nil)

// NewLedger opens a persistent ledger at the given directory.
//
// Returns ledger.Ledger interface to enforce abstraction.
func NewLedger(filePath string) (ledger.Ledger, error) {
	backend, err := openBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return &Ledger{backend: backend}, nil
}

// NewMemoryLedger opens an ephemeral in-memory ledger for testing.
func NewMemoryLedger() (ledger.Ledger, error) {
	backend, err := openBackend("", true)
	if err != nil {
		return nil, err
	}
	return &Ledger{backend: backend}, nil
}

// Contains reports which of the given chunk IDs are already marked.
func (l *Ledger) Contains(ctx context.Context, ids ...string) (map[string]bool, error) {
	if l.closed.Load() {
		return nil, ledger.ErrLedgerClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(ids))
	err := l.backend.db.View(func(tx *badger.Txn) error {
		for _, id := range ids {
			_, err := tx.Get(makeEntryKey(id))
			switch err {
			case nil:
				found[id] = true
			case badger.ErrKeyNotFound:
				// Not marked yet
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Mark records chunks as inserted.
func (l *Ledger) Mark(ctx context.Context, entries ...*ledger.Entry) error {
	if l.closed.Load() {
		return ledger.ErrLedgerClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return l.backend.db.Update(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.InsertedAt.IsZero() {
				entry.InsertedAt = time.Now().UTC()
			}
			if err := tx.Set(makeEntryKey(entry.ChunkID), ledger.MarshalEntry(entry)); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveCheckpoint persists a checkpoint for a source.
func (l *Ledger) SaveCheckpoint(ctx context.Context, checkpoint *ledger.Checkpoint) error {
	if l.closed.Load() {
		return ledger.ErrLedgerClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return l.backend.db.Update(func(tx *badger.Txn) error {
		checkpoint.UpdatedAt = time.Now().UTC()
		return tx.Set(makeCheckpointKey(checkpoint.Source), ledger.MarshalCheckpoint(checkpoint))
	})
}

// LoadCheckpoint retrieves the checkpoint for a source.
// Returns nil, nil if no checkpoint exists.
func (l *Ledger) LoadCheckpoint(ctx context.Context, source string) (*ledger.Checkpoint, error) {
	if l.closed.Load() {
		return nil, ledger.ErrLedgerClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var checkpoint *ledger.Checkpoint
	err := l.backend.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(source))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = ledger.UnmarshalCheckpoint(val)
			return unmarshalErr
		})
	})
	return checkpoint, err
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.backend.close()
}
