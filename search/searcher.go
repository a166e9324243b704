package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/chunkit/ai"
	"github.com/poiesic/chunkit/store"
)

// Searcher runs semantic queries over the chunk collection.
type Searcher struct {
	embedder ai.Embedder
	vstore   store.VectorStore
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embedder ai.Embedder, vstore store.VectorStore, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vstore == nil {
		return nil, ErrStoreRequired
	}

	s := &Searcher{
		embedder: embedder,
		vstore:   vstore,
		logger:   slog.Default().With("component", "search"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Find embeds the query and returns up to limit hits ranked by similarity.
func (s *Searcher) Find(ctx context.Context, query string, limit int) ([]store.Hit, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	s.logger.Debug("embedding query", "length", len(query))
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.vstore.Search(ctx, [][]float32{vector}, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	s.logger.Debug("search complete", "hits", len(results[0]))
	return results[0], nil
}
