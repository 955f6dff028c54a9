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


// Package storage provides the storage abstraction layer for the template
// library.
//
// The library holds raw templates (named strokes as they were drawn) so a
// recognizer can be rebuilt at any time with different sampling settings.
// Normalized vectors are never persisted.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: transaction support and lifecycle
//   - TemplateRepository: operations for raw templates
//
// # Usage
//
// Open a repository on disk:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewTemplateRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() {
//	    repo.Close()
//	    backend.Close()
//	}()
//
// # Ordering
//
// Templates are returned in insertion order. The classifier breaks score
// ties in favor of the earliest template, so insertion order is part of
// the library's meaning.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
