package store

import "context"

// Hit is one ranked result from a vector similarity search.
type Hit struct {
	Id    string
	Text  string
	Score float32
}

// VectorStore persists embedded chunks and serves similarity queries.
// Implementations must be thread-safe and support concurrent access.
type VectorStore interface {
	// Insert writes entities as three parallel columns. The slices must have
	// equal length and every vector must match the collection's declared
	// dimensionality. Entities with an already-present identifier are
	// overwritten by the backend's upsert semantics where available.
	Insert(ctx context.Context, ids []string, vectors [][]float32, texts []string) error

	// CreateIndex builds the vector index over the embedding field and loads
	// the collection for querying. Safe to call repeatedly.
	CreateIndex(ctx context.Context) error

	// Search returns ranked hits per query vector, most similar first.
	// The outer result slice matches the order of the query vectors.
	Search(ctx context.Context, vectors [][]float32, limit int) ([][]Hit, error)

	// Drop removes the collection and all stored entities.
	Drop(ctx context.Context) error

	// Close releases the connection to the backend.
	Close() error
}
