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


// Package storage persists collections of entities on a pluggable medium.
//
// The package is split into two layers:
//
//   - Medium: the narrow key/value contract a persistence backend must
//     satisfy (Get, Set, Remove, Clear, Close). Backends live in
//     subpackages: badger (default) and sqlite.
//   - Store: a generic, type-parameterized collection store that keeps one
//     JSON-encoded array of entities per medium key, with an in-process
//     cache and a per-key write lock.
//
// # Constructor Return Type Pattern
//
// Backend subpackages return the storage.Medium interface from their public
// constructors to keep callers decoupled from the storage technology:
//
//	medium, err := badger.Open(path)  // returns storage.Medium
//
// # Durability Envelope
//
// Values written through a Store are wrapped in a small JSON envelope
// carrying a format version and a payload checksum. A value that fails
// checksum or envelope validation on read is treated as an empty
// collection rather than an error, so one corrupt key cannot take the
// application down; the event is logged and the next write replaces the
// damaged value.
//
// # Thread Safety
//
// Medium implementations must be safe for concurrent use. Store serializes
// its load-mutate-persist cycle under an internal lock, so concurrent
// updates to the same collection never interleave.
//
// # Context Support
//
// All storage methods accept context.Context for cancellation. Pass
// context.Background() for operations without specific timeout
// requirements.
package storage
