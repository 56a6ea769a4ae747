package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastFetchTimestamp saves the time of the last successful activities fetch
	SaveLastFetchTimestamp(ctx context.Context, timestamp int64) error

	// GetLastFetchTimestamp retrieves the time of the last successful activities fetch
	// Returns 0 if nothing has been fetched yet
	GetLastFetchTimestamp(ctx context.Context) (int64, error)

	// SaveEncryptionSalt stores the salt used to derive the token encryption key
	SaveEncryptionSalt(ctx context.Context, salt []byte) error

	// GetEncryptionSalt returns the stored salt or nil when none exists
	GetEncryptionSalt(ctx context.Context) ([]byte, error)
}
