package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stravadash/internal/client/storage"
)

// Each part of the credential lives under its own key; all of them are
// written inside one bbolt transaction.
var (
	keyAccessToken  = []byte("access_token")
	keyRefreshToken = []byte("refresh_token")
	keyExpiresAt    = []byte("expires_at")
	keyEncrypted    = []byte("encrypted")
)

// SaveCredential stores the credential triple atomically
func (s *Storage) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	if cred == nil {
		return fmt.Errorf("credential is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		expiresAt := make([]byte, 8)
		binary.BigEndian.PutUint64(expiresAt, uint64(cred.ExpiresAt))

		encrypted := []byte{0}
		if cred.Encrypted {
			encrypted[0] = 1
		}

		entries := []struct {
			key   []byte
			value []byte
		}{
			{keyAccessToken, []byte(cred.AccessToken)},
			{keyRefreshToken, []byte(cred.RefreshToken)},
			{keyExpiresAt, expiresAt},
			{keyEncrypted, encrypted},
		}

		for _, e := range entries {
			if err := bucket.Put(e.key, e.value); err != nil {
				return fmt.Errorf("failed to save %s: %w", e.key, err)
			}
		}

		return nil
	})
}

// GetCredential retrieves the stored credential
func (s *Storage) GetCredential(ctx context.Context) (*storage.Credential, error) {
	var cred *storage.Credential

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		access := bucket.Get(keyAccessToken)
		refresh := bucket.Get(keyRefreshToken)
		if access == nil && refresh == nil {
			return storage.ErrCredentialNotFound
		}

		// bbolt отдает срезы, валидные только внутри транзакции, копируем через string()
		cred = &storage.Credential{
			AccessToken:  string(access),
			RefreshToken: string(refresh),
		}

		if raw := bucket.Get(keyExpiresAt); len(raw) == 8 {
			cred.ExpiresAt = int64(binary.BigEndian.Uint64(raw))
		}
		if raw := bucket.Get(keyEncrypted); len(raw) == 1 {
			cred.Encrypted = raw[0] == 1
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return cred, nil
}

// DeleteCredential removes the stored credential (logout)
func (s *Storage) DeleteCredential(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if bucket.Get(keyAccessToken) == nil && bucket.Get(keyRefreshToken) == nil {
			return storage.ErrCredentialNotFound
		}

		for _, key := range [][]byte{keyAccessToken, keyRefreshToken, keyExpiresAt, keyEncrypted} {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		return nil
	})
}
