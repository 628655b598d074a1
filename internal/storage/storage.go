package storage

import "context"

//go:generate moq -out keyvalue_mock.go . KeyValue

// KeyValue defines the persistent key-value store the application state is
// written to. Values are opaque byte blobs; the store never interprets them.
type KeyValue interface {
	// Get returns the value stored under key
	// Returns ErrKeyNotFound if the key doesn't exist
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key
	// Returns ErrKeyNotFound if the key doesn't exist
	Delete(ctx context.Context, key string) error

	// Close releases the underlying database
	Close() error
}
