package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/stravadash/internal/client/storage"
	"github.com/iudanet/stravadash/internal/crypto"
)

// ErrPassphraseRequired is returned when the stored credential is encrypted
// but the store was opened without a key.
var ErrPassphraseRequired = errors.New("stored credential is encrypted, passphrase required")

// CredentialStore implements api.TokenStore and provides the encryption layer
// between the api client and storage. With a key it encrypts tokens before saving
// and decrypts them when retrieving; without a key tokens are stored as-is.
type CredentialStore struct {
	storage storage.CredentialStorage
	key     []byte
}

// NewCredentialStore creates a CredentialStore.
// key must be nil (plaintext) or crypto.KeyLen bytes.
func NewCredentialStore(s storage.CredentialStorage, key []byte) (*CredentialStore, error) {
	if key != nil && len(key) != crypto.KeyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", crypto.KeyLen, len(key))
	}
	return &CredentialStore{storage: s, key: key}, nil
}

// Encrypted reports whether the store seals tokens
func (s *CredentialStore) Encrypted() bool {
	return s.key != nil
}

// SaveCredential шифрует токены (если задан ключ) и передает в хранилище
func (s *CredentialStore) SaveCredential(ctx context.Context, cred *storage.Credential) error {
	if cred == nil {
		return fmt.Errorf("credential is nil")
	}

	// копируем структуру, чтобы не менять входящую
	stored := *cred
	stored.Encrypted = false

	if s.key != nil {
		var err error
		if stored.AccessToken, err = sealOptional(cred.AccessToken, s.key); err != nil {
			return fmt.Errorf("failed to encrypt access token: %w", err)
		}
		if stored.RefreshToken, err = sealOptional(cred.RefreshToken, s.key); err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		stored.Encrypted = true
	}

	return s.storage.SaveCredential(ctx, &stored)
}

// GetCredential загружает credential и расшифровывает токены
func (s *CredentialStore) GetCredential(ctx context.Context) (*storage.Credential, error) {
	stored, err := s.storage.GetCredential(ctx)
	if err != nil {
		return nil, err
	}

	cred := *stored
	cred.Encrypted = false

	if !stored.Encrypted {
		return &cred, nil
	}
	if s.key == nil {
		return nil, ErrPassphraseRequired
	}

	if cred.AccessToken, err = openOptional(stored.AccessToken, s.key); err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	if cred.RefreshToken, err = openOptional(stored.RefreshToken, s.key); err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	return &cred, nil
}

// DeleteCredential удаляет данные
func (s *CredentialStore) DeleteCredential(ctx context.Context) error {
	return s.storage.DeleteCredential(ctx)
}

// sealOptional хранит пустой токен пустым: crypto.SealString отклоняет пустой
// plaintext, а пустое значение на диске означает, что токена нет
func sealOptional(token string, key []byte) (string, error) {
	if token == "" {
		return "", nil
	}
	return crypto.SealString(token, key)
}

func openOptional(sealed string, key []byte) (string, error) {
	if sealed == "" {
		return "", nil
	}
	return crypto.OpenString(sealed, key)
}

// UnlockKey derives the token key for passphrase. The salt is read from metadata,
// and generated and saved on first use.
func UnlockKey(ctx context.Context, meta storage.MetadataStorage, passphrase string) ([]byte, error) {
	salt, err := meta.GetEncryptionSalt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read encryption salt: %w", err)
	}

	if salt == nil {
		if salt, err = crypto.GenerateSalt(); err != nil {
			return nil, err
		}
		if err := meta.SaveEncryptionSalt(ctx, salt); err != nil {
			return nil, fmt.Errorf("failed to save encryption salt: %w", err)
		}
	}

	return crypto.DeriveTokenKey(passphrase, salt)
}
