package storage

import "errors"

// Common client storage errors
var (
	// ErrCredentialNotFound indicates that no credential has been saved yet
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrNotCached indicates that the requested payload is not in the local cache
	ErrNotCached = errors.New("not cached")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
