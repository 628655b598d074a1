package storage

import "errors"

// Common storage errors
var (
	// ErrKeyNotFound indicates that no value is stored under the key
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrEmptyKey indicates that an empty key was passed
	ErrEmptyKey = errors.New("key cannot be empty")
)
