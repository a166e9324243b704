// Package search provides query-side access to ingested chunks: it embeds a
// text query and runs a similarity search against the vector store.
package search
