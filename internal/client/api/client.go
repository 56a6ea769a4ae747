// Package api is the Strava HTTP client. It owns the OAuth credential, refreshes
// it before it goes stale and retries a request once when the API rejects the token.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/stravadash/internal/client/storage"
)

const (
	// ExpiryMargin: токен считается истекшим за 5 минут до expires_at
	ExpiryMargin = 300

	refreshKey = "refresh"
)

//go:generate moq -out token_store_mock.go . TokenStore

// TokenStore persists the credential between runs.
// Implemented by boltdb.Storage (plaintext) and auth.CredentialStore (encrypted).
type TokenStore interface {
	SaveCredential(ctx context.Context, cred *storage.Credential) error
	GetCredential(ctx context.Context) (*storage.Credential, error)
	DeleteCredential(ctx context.Context) error
}

// Config holds static client settings
type Config struct {
	BaseURL      string // например https://www.strava.com/api/v3
	TokenURL     string // https://www.strava.com/oauth/token
	ClientID     string
	ClientSecret string
	// AccessToken and RefreshToken are used when the store has no credential yet.
	AccessToken  string
	RefreshToken string
	// MaxPages bounds ListAllActivities; 0 means unbounded.
	MaxPages int
	Timeout  time.Duration
}

// Client представляет HTTP клиент Strava API с автоматическим обновлением токена
type Client struct {
	httpClient *http.Client
	store      TokenStore
	logger     *slog.Logger
	now        func() time.Time
	refresh    singleflight.Group
	cfg        Config
	cred       storage.Credential
	mu         sync.RWMutex
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock replaces time.Now, used by expiry checks
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient создает клиент и загружает сохраненный credential.
// If the store holds nothing, the tokens from cfg are used with an unknown expiry.
func NewClient(ctx context.Context, cfg Config, store TokenStore, opts ...Option) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		cfg:    cfg,
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.cred = storage.Credential{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
	}

	if store != nil {
		stored, err := store.GetCredential(ctx)
		switch {
		case err == nil:
			c.cred = *stored
		case errors.Is(err, storage.ErrCredentialNotFound):
			c.logger.Debug("no stored credential, using configured tokens")
		default:
			return nil, fmt.Errorf("failed to load credential: %w", err)
		}
	}

	return c, nil
}

// Credential returns a copy of the current credential
func (c *Client) Credential() storage.Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cred
}

// IsExpired reports whether the access token is within ExpiryMargin of its expiry
// or past it. An unknown expiry (0) counts as valid.
func (c *Client) IsExpired() bool {
	c.mu.RLock()
	expiresAt := c.cred.ExpiresAt
	c.mu.RUnlock()

	if expiresAt == 0 {
		return false
	}
	return c.now().Unix() >= expiresAt-ExpiryMargin
}

// EnsureValid guarantees the access token is not expired when it returns nil.
// Concurrent callers that see an expired token share a single refresh: the first
// one starts it, the others wait for its outcome.
func (c *Client) EnsureValid(ctx context.Context) error {
	if !c.IsExpired() {
		return nil
	}

	// Отмена контекста одного вызывающего не должна срывать общий refresh
	refreshCtx := context.WithoutCancel(ctx)

	ch := c.refresh.DoChan(refreshKey, func() (any, error) {
		// Refresh мог завершиться между проверкой и входом в группу
		if !c.IsExpired() {
			return nil, nil
		}
		return nil, c.Refresh(refreshCtx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tokenResponse is the body of POST /oauth/token
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Refresh exchanges the refresh token for a new credential and persists it.
// On a non-2xx answer it returns *RefreshFailedError and keeps the old credential.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	refreshToken := c.cred.RefreshToken
	c.mu.RUnlock()

	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("token refresh rejected", "status", resp.StatusCode)
		return &RefreshFailedError{Status: resp.StatusCode, StatusText: statusText(resp)}
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if tokens.AccessToken == "" {
		return fmt.Errorf("refresh response has no access token")
	}

	expiresAt := tokens.ExpiresAt
	if expiresAt == 0 && tokens.ExpiresIn > 0 {
		expiresAt = c.now().Unix() + tokens.ExpiresIn
	}

	updated := storage.Credential{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    expiresAt,
	}
	// Strava может не менять refresh token
	if updated.RefreshToken == "" {
		updated.RefreshToken = refreshToken
	}

	c.mu.Lock()
	c.cred = updated
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SaveCredential(ctx, &updated); err != nil {
			// в памяти credential уже обновлен, сохранится при следующем refresh
			c.logger.Error("failed to persist refreshed credential", "error", err)
		}
	}

	c.logger.Info("access token refreshed", "expires_at", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}

// Request выполняет GET запрос к API и декодирует JSON ответ в out.
// A 401 triggers one direct Refresh and one retry; any other non-2xx answer
// (or a second 401) is returned as *APIError.
func (c *Client) Request(ctx context.Context, endpoint string, params map[string]string, out any) error {
	if err := c.EnsureValid(ctx); err != nil {
		return err
	}

	fullURL := c.cfg.BaseURL + endpoint
	if len(params) > 0 {
		query := url.Values{}
		for k, v := range params {
			query.Set(k, v)
		}
		fullURL += "?" + query.Encode()
	}

	resp, err := c.get(ctx, fullURL)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drainAndClose(resp)
		c.logger.Debug("access token rejected, refreshing", "endpoint", endpoint)

		if err := c.Refresh(ctx); err != nil {
			return err
		}

		resp, err = c.get(ctx, fullURL)
		if err != nil {
			return err
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Endpoint:   endpoint,
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
		}
		var fault struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &fault) == nil {
			apiErr.Message = fault.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Fetch is the typed form of Client.Request
func Fetch[T any](ctx context.Context, c *Client, endpoint string, params map[string]string) (T, error) {
	var out T
	err := c.Request(ctx, endpoint, params, &out)
	return out, err
}

// Logout forgets the credential in memory and removes it from the store
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.cred = storage.Credential{}
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	if err := c.store.DeleteCredential(ctx); err != nil && !errors.Is(err, storage.ErrCredentialNotFound) {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.mu.RLock()
	req.Header.Set("Authorization", "Bearer "+c.cred.AccessToken)
	c.mu.RUnlock()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// statusText returns "Unauthorized" for "401 Unauthorized"
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
