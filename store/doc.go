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


// Package store defines the vector store abstraction the ingestion pipeline
// writes into and the searcher reads from.
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple backend
// implementations:
//
//	vs, err := milvus.NewStore(ctx, cfg)  // returns store.VectorStore interface
//
// The milvus subpackage implements the interface against a Milvus server;
// the mock subpackage provides an in-memory recording implementation for
// tests. All implementations must be thread-safe.
package store
