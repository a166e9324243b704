// Package ai defines the embedding provider abstraction used by the
// ingestion pipeline and the searcher.
//
// The Embedder interface is implemented by the openai subpackage for any
// OpenAI-compatible embedding API (OpenAI, Ollama, LocalAI, vLLM) and by the
// mock subpackage for tests. Consumers depend only on the interface so
// providers can be swapped without touching pipeline code.
package ai
