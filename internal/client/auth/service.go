package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/iudanet/stravadash/internal/client/storage"
	"github.com/iudanet/stravadash/internal/models"
)

// ErrAccessDenied is returned when the user declined the authorization request
var ErrAccessDenied = errors.New("authorization was denied by the user")

// DefaultScopes: Strava принимает scope через запятую одной строкой
var DefaultScopes = []string{"read,activity:read_all,profile:read_all"}

// OAuthConfig holds the Strava OAuth application settings
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string // https://www.strava.com/oauth/authorize
	TokenURL     string // https://www.strava.com/oauth/token
	RedirectURL  string
	Scopes       []string
}

// Service предоставляет функции авторизации: первичный вход через OAuth и выход.
// Token refresh belongs to api.Client and is not done here.
type Service struct {
	oauth      *oauth2.Config
	store      storage.CredentialStorage
	cache      storage.ActivityCache
	httpClient *http.Client
	logger     *slog.Logger
}

// Compile-time check that Service implements AuthService
var _ AuthService = (*Service)(nil)

// NewService создает новый сервис авторизации.
// cache may be nil; when set, Logout wipes it as well.
func NewService(cfg OAuthConfig, store storage.CredentialStorage, cache storage.ActivityCache, logger *slog.Logger) *Service {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// SetHTTPClient replaces the client used for the code exchange
func (s *Service) SetHTTPClient(hc *http.Client) {
	s.httpClient = hc
}

// LoginResult содержит результат авторизации
type LoginResult struct {
	Athlete    *models.Athlete // nil если Strava не вернула профиль
	Credential storage.Credential
}

// AuthCodeURL returns the page the user opens to grant access
func (s *Service) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "force"))
}

// Login exchanges the authorization code for tokens and saves them
func (s *Service) Login(ctx context.Context, code string) (*LoginResult, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is empty")
	}

	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	result := &LoginResult{
		Credential: storage.Credential{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			ExpiresAt:    expiresAt(token),
		},
		Athlete: athleteFromToken(token),
	}

	if err := s.store.SaveCredential(ctx, &result.Credential); err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}

	s.logger.Info("logged in", "expires_at", result.Credential.ExpiresAt)
	return result, nil
}

// Logout выполняет выход из системы
// Удаляет локальный credential и кэш активностей
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.DeleteCredential(ctx); err != nil {
		if !errors.Is(err, storage.ErrCredentialNotFound) {
			return fmt.Errorf("failed to delete local credential: %w", err)
		}
		s.logger.Debug("no credential found during logout")
	}

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear activity cache: %w", err)
		}
	}

	return nil
}

// expiresAt берет expires_at из ответа Strava, иначе вычисляет по expires_in
func expiresAt(token *oauth2.Token) int64 {
	switch v := token.Extra("expires_at").(type) {
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	if !token.Expiry.IsZero() {
		return token.Expiry.Unix()
	}
	return 0
}

// athleteFromToken decodes the athlete summary Strava attaches to the token response
func athleteFromToken(token *oauth2.Token) *models.Athlete {
	raw := token.Extra("athlete")
	if raw == nil {
		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}

	var athlete models.Athlete
	if err := json.Unmarshal(data, &athlete); err != nil || athlete.ID == 0 {
		return nil
	}
	return &athlete
}

// ParseCode accepts either a bare authorization code or the full redirect URL
// the browser landed on, and returns the code.
func ParseCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("authorization code is empty")
	}

	if !strings.Contains(input, "?") && !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid redirect url: %w", err)
	}

	query := u.Query()
	if query.Get("error") != "" {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, query.Get("error"))
	}

	code := query.Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect url has no code parameter")
	}
	return code, nil
}
