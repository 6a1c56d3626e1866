// Copyright 2025 MataConnect
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


// Package storage provides the storage abstraction layer for the
// enrichment cache.
//
// It defines the RecordStore interface that decouples the pipeline from
// the storage implementation, along with payload serialization helpers.
// The canonical on-disk payload form is indented JSON text, matching the
// form produced by the enrichment collaborator; it must round-trip
// losslessly through UnmarshalCommunity.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage.RecordStore
// interface rather than concrete types:
//
//	store, err := badger.NewRecordStore(path)  // returns storage.RecordStore
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute in-memory or mock stores without modification.
//
// # Concurrency
//
// The pipeline is single-writer by design: one orchestrator or loader
// process at a time. Individual operations are atomic with respect to a
// single caller; concurrent multi-process access to the same store is
// undefined.
package storage
