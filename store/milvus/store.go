package milvus

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/poiesic/chunkit/store"
)

// Store implements store.VectorStore backed by a Milvus collection.
type Store struct {
	cli    client.Client
	config Config
	logger *slog.Logger
	closed atomic.Bool
}

var _ store.VectorStore = (*Store)(nil)

// NewStore connects to Milvus and ensures the chunk collection exists.
//
// Returns store.VectorStore interface to enforce abstraction.
func NewStore(ctx context.Context, config Config) (store.VectorStore, error) {
	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	cli, err := client.NewClient(ctx, client.Config{Address: config.Address})
	if err != nil {
		return nil, &store.Error{Op: "connect", Err: err}
	}

	s := &Store{
		cli:    cli,
		config: config,
		logger: slog.Default().With("component", "milvus-store", "collection", config.Collection),
	}

	if err := s.ensureCollection(ctx); err != nil {
		cli.Close()
		return nil, err
	}

	return s, nil
}

// ensureCollection creates the collection if it does not exist yet.
func (s *Store) ensureCollection(ctx context.Context) error {
	has, err := s.cli.HasCollection(ctx, s.config.Collection)
	if err != nil {
		return &store.Error{Op: "has-collection", Err: err}
	}
	if has {
		return nil
	}

	schema := entity.NewSchema().
		WithName(s.config.Collection).
		WithDescription("windowed transcript chunks with embeddings").
		WithField(entity.NewField().
			WithName(s.config.IDField).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(defaultIDMaxLength).
			WithIsPrimaryKey(true)).
		WithField(entity.NewField().
			WithName(s.config.VectorField).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(s.config.Dimension))).
		WithField(entity.NewField().
			WithName(s.config.TextField).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(defaultTextMaxLength))

	s.logger.Info("creating collection", "dimension", s.config.Dimension)
	if err := s.cli.CreateCollection(ctx, schema, defaultShardNum); err != nil {
		return &store.Error{Op: "create-collection", Err: err}
	}
	return nil
}

// Insert writes entities as three parallel columns and flushes the segment.
func (s *Store) Insert(ctx context.Context, ids []string, vectors [][]float32, texts []string) error {
	if s.closed.Load() {
		return store.ErrStoreClosed
	}
	if len(ids) != len(vectors) || len(ids) != len(texts) {
		return store.ErrUnevenColumns
	}
	if len(ids) == 0 {
		return nil
	}
	for i, v := range vectors {
		if len(v) != s.config.Dimension {
			return fmt.Errorf("%w: entity %d has %d, collection wants %d",
				store.ErrDimensionMismatch, i, len(v), s.config.Dimension)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	idCol := entity.NewColumnVarChar(s.config.IDField, ids)
	vecCol := entity.NewColumnFloatVector(s.config.VectorField, s.config.Dimension, vectors)
	textCol := entity.NewColumnVarChar(s.config.TextField, texts)

	if _, err := s.cli.Insert(ctx, s.config.Collection, "", idCol, vecCol, textCol); err != nil {
		return &store.Error{Op: "insert", Err: err}
	}
	if err := s.cli.Flush(ctx, s.config.Collection, false); err != nil {
		return &store.Error{Op: "flush", Err: err}
	}

	s.logger.Debug("inserted entities", "count", len(ids))
	return nil
}

// CreateIndex builds an IVF_FLAT index over the vector field and loads the
// collection so it becomes searchable.
func (s *Store) CreateIndex(ctx context.Context) error {
	if s.closed.Load() {
		return store.ErrStoreClosed
	}
	if err := s.requireCollection(ctx); err != nil {
		return err
	}

	idx, err := entity.NewIndexIvfFlat(entity.L2, s.config.IndexNList)
	if err != nil {
		return &store.Error{Op: "create-index", Err: err}
	}

	if err := s.cli.CreateIndex(ctx, s.config.Collection, s.config.VectorField, idx, false); err != nil {
		return &store.Error{Op: "create-index", Err: err}
	}

	if err := s.cli.LoadCollection(ctx, s.config.Collection, false); err != nil {
		return &store.Error{Op: "load-collection", Err: err}
	}

	s.logger.Info("index created and collection loaded", "nlist", s.config.IndexNList)
	return nil
}

// requireCollection fails with ErrCollectionMissing when the collection has
// been dropped since the store was opened.
func (s *Store) requireCollection(ctx context.Context) error {
	has, err := s.cli.HasCollection(ctx, s.config.Collection)
	if err != nil {
		return &store.Error{Op: "has-collection", Err: err}
	}
	if !has {
		return fmt.Errorf("%w: %s", store.ErrCollectionMissing, s.config.Collection)
	}
	return nil
}

// Search returns ranked hits per query vector.
func (s *Store) Search(ctx context.Context, vectors [][]float32, limit int) ([][]store.Hit, error) {
	if s.closed.Load() {
		return nil, store.ErrStoreClosed
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	queries := make([]entity.Vector, len(vectors))
	for i, v := range vectors {
		queries[i] = entity.FloatVector(v)
	}

	sp, err := entity.NewIndexIvfFlatSearchParam(s.config.SearchNProbe)
	if err != nil {
		return nil, &store.Error{Op: "search", Err: err}
	}

	results, err := s.cli.Search(ctx, s.config.Collection, nil, "",
		[]string{s.config.IDField, s.config.TextField},
		queries, s.config.VectorField, entity.L2, limit, sp)
	if err != nil {
		return nil, &store.Error{Op: "search", Err: err}
	}

	hits := make([][]store.Hit, len(results))
	for qi, result := range results {
		textCol := result.Fields.GetColumn(s.config.TextField)
		rows := make([]store.Hit, 0, result.ResultCount)
		for i := 0; i < result.ResultCount; i++ {
			id, err := result.IDs.GetAsString(i)
			if err != nil {
				return nil, &store.Error{Op: "search", Err: err}
			}
			text := ""
			if textCol != nil {
				if text, err = textCol.GetAsString(i); err != nil {
					return nil, &store.Error{Op: "search", Err: err}
				}
			}
			rows = append(rows, store.Hit{Id: id, Text: text, Score: result.Scores[i]})
		}
		hits[qi] = rows
	}
	return hits, nil
}

// Drop removes the collection and all stored entities.
func (s *Store) Drop(ctx context.Context) error {
	if s.closed.Load() {
		return store.ErrStoreClosed
	}
	if err := s.cli.DropCollection(ctx, s.config.Collection); err != nil {
		return &store.Error{Op: "drop-collection", Err: err}
	}
	s.logger.Info("collection dropped")
	return nil
}

// Close releases the connection to the Milvus server.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.cli.Close()
}
