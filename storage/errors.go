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


package storage

import "errors"

var (
	// ErrNotFound indicates that no entity with the requested id exists.
	ErrNotFound = errors.New("entity not found")

	// ErrPersistence indicates a serialization or medium I/O failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrCorruptPayload indicates a stored value that failed envelope or
	// checksum validation.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrStorageClosed indicates that the storage medium is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
