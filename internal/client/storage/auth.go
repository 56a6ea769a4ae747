package storage

import (
	"context"
)

// CredentialStorage defines interface for persisting the Strava credential on client.
// This is the lowest storage layer - it works with raw data (tokens may already be
// encrypted) and doesn't perform any encryption/decryption itself.
type CredentialStorage interface {
	// SaveCredential stores the credential as-is. Access token, refresh token and
	// expiry are written together: a reader never observes a mix of old and new values.
	SaveCredential(ctx context.Context, cred *Credential) error

	// GetCredential retrieves the stored credential as-is.
	// Returns ErrCredentialNotFound if nothing was saved yet
	GetCredential(ctx context.Context) (*Credential, error)

	// DeleteCredential removes the stored credential (logout)
	DeleteCredential(ctx context.Context) error
}

// Credential represents the OAuth token triple in storage
// IMPORTANT: This struct is used at different layers with different token states:
// - In memory (api client): tokens are plaintext
// - In storage (BoltDB): tokens are plaintext or AES-GCM ciphertext (base64) when Encrypted is set
// The encryption/decryption happens in auth.CredentialStore layer.
type Credential struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds, 0 = unknown
	Encrypted    bool   `json:"encrypted"`
}
