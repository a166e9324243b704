package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/chunkit/ai"
	"github.com/poiesic/chunkit/core"
	"github.com/poiesic/chunkit/ledger"
	"github.com/poiesic/chunkit/store"
)

// Config holds configuration for the ingestion pipeline.
type Config struct {
	// BatchSize is the number of chunks embedded and inserted per round trip.
	BatchSize int

	// Dimension is the expected length of every returned embedding vector.
	Dimension int

	// RetryDelay is the fixed wait before re-attempting a failed embedding call.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
// Dimension has no usable default and must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:  64,
		RetryDelay: 3 * time.Second,
	}
}

// Pipeline embeds chunks in batches and writes them into a vector store.
// Batches are processed strictly sequentially: a batch's embedding and
// insertion both complete before the next batch starts.
type Pipeline struct {
	embedder ai.Embedder
	vstore   store.VectorStore
	ledger   ledger.Ledger
	config   *Config
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithLedger attaches an ingest ledger. Chunks whose IDs the ledger already
// holds are skipped before batching, and every successfully inserted batch is
// marked afterwards, making interrupted loads resumable.
func WithLedger(l ledger.Ledger) Option {
	return func(p *Pipeline) error {
		p.ledger = l
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
// Configuration errors are rejected here, before any processing starts.
func NewPipeline(embedder ai.Embedder, vstore store.VectorStore, config *Config, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vstore == nil {
		return nil, ErrStoreRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	if config.Dimension <= 0 {
		return nil, ErrInvalidDimension
	}
	if config.RetryDelay <= 0 {
		return nil, ErrInvalidRetryDelay
	}

	p := &Pipeline{
		embedder: embedder,
		vstore:   vstore,
		config:   config,
		logger:   slog.Default().With("component", "ingest"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Ingest embeds and stores the chunks, returning the count of entities
// confirmed inserted. On failure at batch k the count covers batches 0..k-1,
// which are already durable in the store.
//
// Transient embedder failures never surface: they are retried forever with a
// fixed delay. Dimensionality mismatches and store failures are returned
// immediately with the batch index attached.
func (p *Pipeline) Ingest(ctx context.Context, chunks []*core.Chunk) (int, error) {
	chunks, err := p.skipIngested(ctx, chunks)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	p.logger.Info("ingesting chunks", "chunks", len(chunks), "batchSize", p.config.BatchSize)

	total := 0
	for batch := 0; batch*p.config.BatchSize < len(chunks); batch++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		start := batch * p.config.BatchSize
		end := start + p.config.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		inserted, err := p.processBatch(ctx, batch, chunks[start:end])
		total += inserted
		if err != nil {
			return total, err
		}
	}

	p.logger.Info("ingestion complete", "inserted", total)
	return total, nil
}

// processBatch embeds one batch and inserts it into the store.
func (p *Pipeline) processBatch(ctx context.Context, batch int, chunks []*core.Chunk) (int, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var embeddings [][]float32
	err := retryForever(ctx, p.config.RetryDelay, p.logger.With("batch", batch), func() error {
		var err error
		embeddings, err = p.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("batch %d: %w", batch, err)
	}

	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("batch %d: %w: expected %d, got %d",
			batch, ErrEmbeddingCount, len(chunks), len(embeddings))
	}
	for i, embedding := range embeddings {
		if len(embedding) != p.config.Dimension {
			return 0, &DimensionError{
				Batch:   batch,
				ChunkID: chunks[i].Id,
				Want:    p.config.Dimension,
				Got:     len(embedding),
			}
		}
	}

	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.Id
	}

	if err := p.vstore.Insert(ctx, ids, embeddings, texts); err != nil {
		return 0, fmt.Errorf("batch %d: %w", batch, err)
	}

	p.markIngested(ctx, chunks)
	p.logger.Debug("batch stored", "batch", batch, "entities", len(chunks))
	return len(chunks), nil
}

// skipIngested drops chunks the ledger already holds.
func (p *Pipeline) skipIngested(ctx context.Context, chunks []*core.Chunk) ([]*core.Chunk, error) {
	if p.ledger == nil || len(chunks) == 0 {
		return chunks, nil
	}

	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.Id
	}
	seen, err := p.ledger.Contains(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("ledger lookup: %w", err)
	}

	kept := chunks[:0:0]
	for _, chunk := range chunks {
		if !seen[chunk.Id] {
			kept = append(kept, chunk)
		}
	}
	if skipped := len(chunks) - len(kept); skipped > 0 {
		p.logger.Info("skipping already-ingested chunks", "skipped", skipped)
	}
	return kept, nil
}

// markIngested records a durably inserted batch in the ledger.
// The insert is already committed, so a ledger failure is logged rather than
// surfaced; the worst case is re-embedding the batch on a later run.
func (p *Pipeline) markIngested(ctx context.Context, chunks []*core.Chunk) {
	if p.ledger == nil {
		return
	}

	now := time.Now().UTC()
	entries := make([]*ledger.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = &ledger.Entry{
			ChunkID:    chunk.Id,
			GroupKey:   chunk.GroupKey,
			InsertedAt: now,
		}
	}
	if err := p.ledger.Mark(ctx, entries...); err != nil {
		p.logger.Error("error marking chunks in ledger", "err", err)
	}
}
