package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidDimension is returned when the embedding dimension is not positive.
	ErrInvalidDimension = errors.New("embedding dimension must be greater than 0")

	// ErrInvalidRetryDelay is returned when the retry delay is not positive.
	ErrInvalidRetryDelay = errors.New("retry delay must be greater than 0")

	// ErrEmbeddingCount indicates the provider returned a different number of
	// vectors than texts submitted. This is a data-integrity fault, not a
	// transient one, and is never retried.
	ErrEmbeddingCount = errors.New("embedding count mismatch")
)

// DimensionError reports a returned embedding whose length does not match the
// configured dimensionality. It indicates a configuration fault (wrong model
// or wrong declared dimension) rather than a transient one, so the batch is
// failed instead of retried. Batch and ChunkID identify the offending entity
// for manual remediation.
type DimensionError struct {
	Batch   int
	ChunkID string
	Want    int
	Got     int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("batch %d: chunk %s: embedding dimension mismatch: want %d, got %d",
		e.Batch, e.ChunkID, e.Want, e.Got)
}
