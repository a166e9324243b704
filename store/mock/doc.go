// Package mock provides an in-memory store.VectorStore for tests.
package mock
