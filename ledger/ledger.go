package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry marks one chunk as durably inserted into the vector store.
type Entry struct {
	ChunkID    string
	GroupKey   string
	RunID      string
	InsertedAt time.Time
}

// Checkpoint records per-source ingestion progress.
type Checkpoint struct {
	Source    string // e.g. the input file path
	RunID     string
	Ingested  int
	UpdatedAt time.Time
}

// NewRunID generates a unique identifier for one ingestion run.
func NewRunID() string {
	return uuid.NewString()
}

// Ledger provides durable bookkeeping for the ingestion pipeline.
// Implementations must be thread-safe and support concurrent access.
type Ledger interface {
	// Contains reports which of the given chunk IDs are already marked.
	// The returned map has an entry for every ID found; absent IDs are
	// simply missing from the map.
	Contains(ctx context.Context, ids ...string) (map[string]bool, error)

	// Mark records chunks as inserted. Entries with a zero InsertedAt get
	// the current time. Re-marking an existing chunk overwrites its entry.
	Mark(ctx context.Context, entries ...*Entry) error

	// SaveCheckpoint persists a checkpoint for a source.
	SaveCheckpoint(ctx context.Context, checkpoint *Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a source.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, source string) (*Checkpoint, error)

	// Close closes the ledger and releases resources.
	Close() error
}
