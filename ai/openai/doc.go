// Package openai implements the ai.Embedder interface against any
// OpenAI-compatible embedding API.
//
// The implementation is built on langchaingo's openai client and embeddings
// wrapper, so it works unchanged against OpenAI itself as well as local
// servers such as Ollama, LocalAI, and vLLM.
package openai
