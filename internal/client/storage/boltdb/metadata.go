package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	keyLastFetchTimestamp = "last_fetch_timestamp"
	keyEncryptionSalt     = "encryption_salt"
)

// SaveLastFetchTimestamp saves the time of the last successful activities fetch
func (s *Storage) SaveLastFetchTimestamp(ctx context.Context, timestamp int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))

		if err := bucket.Put([]byte(keyLastFetchTimestamp), timestampBytes); err != nil {
			return fmt.Errorf("failed to save last fetch timestamp: %w", err)
		}

		return nil
	})
}

// GetLastFetchTimestamp retrieves the time of the last successful activities fetch
// Returns 0 if nothing has been fetched yet
func (s *Storage) GetLastFetchTimestamp(ctx context.Context) (int64, error) {
	var timestamp int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		timestampBytes := bucket.Get([]byte(keyLastFetchTimestamp))
		if timestampBytes == nil {
			timestamp = 0
			return nil
		}

		timestamp = int64(binary.BigEndian.Uint64(timestampBytes))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get last fetch timestamp: %w", err)
	}

	return timestamp, nil
}

// SaveEncryptionSalt stores the salt used for token encryption key derivation
func (s *Storage) SaveEncryptionSalt(ctx context.Context, salt []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyEncryptionSalt), salt); err != nil {
			return fmt.Errorf("failed to save encryption salt: %w", err)
		}

		return nil
	})
}

// GetEncryptionSalt returns the stored salt, nil if none was saved
func (s *Storage) GetEncryptionSalt(ctx context.Context) ([]byte, error) {
	var salt []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if raw := bucket.Get([]byte(keyEncryptionSalt)); raw != nil {
			salt = append([]byte(nil), raw...)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get encryption salt: %w", err)
	}

	return salt, nil
}
