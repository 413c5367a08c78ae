package storage

import "context"

// Medium is the persistence contract the collection store depends on.
// Implementations must be thread-safe and support concurrent access.
type Medium interface {
	// Get returns the value stored under key.
	// An absent key returns (nil, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	// The write is durable when Set returns.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the value stored under key.
	// Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every value held by the medium.
	Clear(ctx context.Context) error

	// Close releases the medium's resources. Operations on a closed
	// medium return ErrStorageClosed.
	Close() error
}
