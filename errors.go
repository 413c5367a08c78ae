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


package satchel

import (
	"errors"

	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/storage"
)

var (
	// ErrDBRequired indicates a collection was constructed without a database.
	ErrDBRequired = errors.New("database is required")

	// ErrStorageKeyRequired indicates a collection was configured without a
	// storage key.
	ErrStorageKeyRequired = errors.New("storage key is required")

	// ErrMediumRequired indicates a database was opened without a medium.
	ErrMediumRequired = errors.New("storage medium is required")
)

// The operational error taxonomy, re-exported so callers can match failures
// with errors.Is against this package alone.
var (
	ErrNotFound    = storage.ErrNotFound
	ErrPersistence = storage.ErrPersistence
	ErrValidation  = core.ErrValidation
)
