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


// Package satchel is a local reactive entity store: a generic CRUD and query
// engine over per-collection persisted keys, with change notification that
// lets any number of consumers re-run a query exactly when the underlying
// collection changes.
package satchel

import (
	"context"
	"log/slog"

	"github.com/poiesic/satchel/storage"
	"github.com/poiesic/satchel/storage/badger"
)

// DB owns the persistence medium collections are built on. Construct one at
// application start and hand it to the services that need it; there is no
// package-level instance.
type DB struct {
	medium storage.Medium
	logger *slog.Logger
}

// DBOption configures a DB.
type DBOption func(*DB) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DBOption {
	return func(db *DB) error {
		if logger == nil {
			logger = slog.Default()
		}
		db.logger = logger
		return nil
	}
}

// Open opens a database at path on the default BadgerDB medium, creating
// the directory if needed.
func Open(path string, opts ...DBOption) (*DB, error) {
	medium, err := badger.Open(path)
	if err != nil {
		return nil, err
	}
	return OpenMedium(medium, opts...)
}

// OpenMemory opens an ephemeral in-memory database. Nothing survives Close;
// intended for tests and throwaway stores.
func OpenMemory(opts ...DBOption) (*DB, error) {
	medium, err := badger.OpenMemory()
	if err != nil {
		return nil, err
	}
	return OpenMedium(medium, opts...)
}

// OpenMedium wraps an already-open medium, for callers that pick their own
// backend (for example storage/sqlite).
func OpenMedium(medium storage.Medium, opts ...DBOption) (*DB, error) {
	if medium == nil {
		return nil, ErrMediumRequired
	}

	db := &DB{
		medium: medium,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Medium exposes the underlying persistence medium.
func (db *DB) Medium() storage.Medium {
	return db.medium
}

// Logger returns the database logger.
func (db *DB) Logger() *slog.Logger {
	return db.logger
}

// Reset removes every collection from the medium. Irreversible.
func (db *DB) Reset(ctx context.Context) error {
	return db.medium.Clear(ctx)
}

// Close closes the underlying medium.
func (db *DB) Close() error {
	if err := db.medium.Close(); err != nil {
		db.logger.Error("error closing storage medium", "err", err)
		return err
	}
	return nil
}
