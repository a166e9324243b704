// Package ingest turns sequences of chunks into durably stored, searchable
// entities in a vector store.
//
// The Pipeline embeds chunks in fixed-size batches and inserts each batch
// before starting the next. Transient embedding provider failures are
// absorbed by an unbounded fixed-delay retry; dimensionality mismatches and
// store failures surface to the caller immediately with the failing batch
// index. Partial completion is observable: batches inserted before a failure
// stay committed, and the returned count reflects only confirmed inserts.
//
// The Runner wraps a Pipeline with a worker pool for ingesting independent
// chunk sets concurrently. Within each set, batch order is preserved.
package ingest
