package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnevenColumns indicates the ids, vectors, and texts slices passed to
	// Insert do not have equal lengths.
	ErrUnevenColumns = errors.New("ids, vectors, and texts must have equal lengths")

	// ErrDimensionMismatch indicates a vector does not match the collection's
	// declared dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCollectionMissing indicates the target collection does not exist.
	ErrCollectionMissing = errors.New("collection does not exist")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("store is closed")
)

// Error wraps a backend failure with the operation that produced it.
// Store-side failures are surfaced to callers unchanged; masking them would
// risk silent data loss.
type Error struct {
	Op  string // e.g. "insert", "create-index", "search"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
