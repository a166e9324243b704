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


// Package chunkit ingests time-ordered transcript segments into a vector
// store: segments are rolled up into overlapping chunks, embedded in batches,
// and inserted with deterministic identifiers.
//
// The Loader type is the library entry point, wiring the aggregate, ingest,
// and transcript packages together. Components can also be used individually;
// see the package documentation of each.
package chunkit

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/chunkit/ai"
	"github.com/poiesic/chunkit/aggregate"
	"github.com/poiesic/chunkit/core"
	"github.com/poiesic/chunkit/ingest"
	"github.com/poiesic/chunkit/ledger"
	"github.com/poiesic/chunkit/store"
	"github.com/poiesic/chunkit/transcript"
)

// Loader reads transcripts, aggregates them, and ingests the result.
type Loader struct {
	aggregator *aggregate.Aggregator
	pipeline   *ingest.Pipeline
	logger     *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	window     int
	stride     int
	batchSize  int
	retryDelay time.Duration
	ledger     ledger.Ledger
	logger     *slog.Logger
}

// WithWindow sets the number of segments merged per chunk.
func WithWindow(window int) LoaderOption {
	return func(o *loaderOptions) {
		o.window = window
	}
}

// WithStride sets the step between window start positions.
func WithStride(stride int) LoaderOption {
	return func(o *loaderOptions) {
		o.stride = stride
	}
}

// WithBatchSize sets the number of chunks embedded and inserted per round trip.
func WithBatchSize(size int) LoaderOption {
	return func(o *loaderOptions) {
		o.batchSize = size
	}
}

// WithRetryDelay sets the fixed wait before re-attempting a failed embedding call.
func WithRetryDelay(delay time.Duration) LoaderOption {
	return func(o *loaderOptions) {
		o.retryDelay = delay
	}
}

// WithLedger attaches an ingest ledger for resumable loads.
func WithLedger(l ledger.Ledger) LoaderOption {
	return func(o *loaderOptions) {
		o.ledger = l
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(o *loaderOptions) {
		o.logger = logger
	}
}

// NewLoader creates a loader over the given embedder and vector store.
// dimension is the embedding dimensionality the store was created with.
func NewLoader(embedder ai.Embedder, vstore store.VectorStore, dimension int, opts ...LoaderOption) (*Loader, error) {
	options := &loaderOptions{
		window:     aggregate.DefaultWindow,
		stride:     aggregate.DefaultStride,
		batchSize:  ingest.DefaultConfig().BatchSize,
		retryDelay: ingest.DefaultConfig().RetryDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	aggregator, err := aggregate.New(options.window, options.stride,
		aggregate.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	pipelineOpts := []ingest.Option{ingest.WithLogger(options.logger)}
	if options.ledger != nil {
		pipelineOpts = append(pipelineOpts, ingest.WithLedger(options.ledger))
	}

	pipeline, err := ingest.NewPipeline(embedder, vstore, &ingest.Config{
		BatchSize:  options.batchSize,
		Dimension:  dimension,
		RetryDelay: options.retryDelay,
	}, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	return &Loader{
		aggregator: aggregator,
		pipeline:   pipeline,
		logger:     options.logger,
	}, nil
}

// Load reads JSON-lines segments, aggregates them into chunks, and ingests
// them. Returns the count of entities confirmed inserted.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	segments, err := transcript.ReadSegments(r)
	if err != nil {
		return 0, err
	}
	return l.LoadSegments(ctx, segments)
}

// LoadSegments aggregates already-parsed segments and ingests the chunks.
func (l *Loader) LoadSegments(ctx context.Context, segments []*core.Segment) (int, error) {
	chunks := l.aggregator.Collect(segments)
	return l.pipeline.Ingest(ctx, chunks)
}
