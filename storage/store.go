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

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Store keeps one collection of entities persisted under a single medium key.
// Reads are served from an in-process cache after the first load; every
// mutation runs as a load-mutate-persist cycle under the store's lock, so
// two concurrent mutations can never read the same pre-mutation snapshot.
type Store[T any] struct {
	medium Medium
	key    string
	logger *slog.Logger

	mu     sync.Mutex
	cache  []T
	loaded bool
}

// NewStore creates a store for the collection persisted under key.
func NewStore[T any](medium Medium, key string, logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T]{
		medium: medium,
		key:    key,
		logger: logger,
	}
}

// Key returns the medium key the store persists under.
func (s *Store[T]) Key() string {
	return s.key
}

// Load returns the collection. The returned slice is the caller's to keep;
// mutating it does not affect the store.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// Update runs mutate over the current collection and persists its result,
// all under the store's lock. The slice passed to mutate is a private copy;
// mutate returns the collection to persist, or an error to abandon the
// cycle with nothing written. On success Update returns the new collection.
func (s *Store[T]) Update(ctx context.Context, mutate func(items []T) ([]T, error)) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	next, err := mutate(slices.Clone(items))
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.cache = next
	return slices.Clone(next), nil
}

// Reset removes the collection's key from the medium and empties the cache.
func (s *Store[T]) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.medium.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("removing %s: %w: %w", s.key, ErrPersistence, err)
	}
	s.cache = nil
	s.loaded = true
	return nil
}

// load returns the cached collection, reading through to the medium on first
// access. A value that fails envelope validation or JSON decoding is treated
// as an empty collection: the damage is logged and the next persist replaces
// it. Medium I/O failures are real errors and do not empty the collection.
func (s *Store[T]) load(ctx context.Context) ([]T, error) {
	if s.loaded {
		return s.cache, nil
	}

	data, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w: %w", s.key, ErrPersistence, err)
	}

	var items []T
	if data != nil {
		payload, err := DecodeEnvelope(data)
		if err != nil {
			s.logger.Warn("discarding corrupt collection value",
				"key", s.key,
				"error", err)
		} else if err := json.Unmarshal(payload, &items); err != nil {
			s.logger.Warn("discarding undecodable collection value",
				"key", s.key,
				"error", err)
			items = nil
		}
	}

	s.cache = items
	s.loaded = true
	return s.cache, nil
}

// persist writes items under the store's key. The caller holds the lock.
func (s *Store[T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w: %w", s.key, ErrPersistence, err)
	}
	value, err := EncodeEnvelope(payload)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.key, err)
	}
	if err := s.medium.Set(ctx, s.key, value); err != nil {
		return fmt.Errorf("writing %s: %w: %w", s.key, ErrPersistence, err)
	}
	return nil
}
