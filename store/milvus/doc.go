// Package milvus implements store.VectorStore against a Milvus server using
// the official Go SDK.
//
// The collection schema is three fields: a varchar primary key, a
// fixed-dimension float vector, and a varchar text payload. Index and search
// parameters default to IVF_FLAT over L2, which matches the collection this
// pipeline was built to feed; both are configurable.
package milvus
