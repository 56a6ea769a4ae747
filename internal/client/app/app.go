// Package app wires storage, the Strava client and the services from a Config.
// Both cmd/client and cmd/server build their dependencies through Open.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/stravadash/internal/client/api"
	"github.com/iudanet/stravadash/internal/client/auth"
	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/client/storage/boltdb"
	"github.com/iudanet/stravadash/internal/client/storage/sqlite"
	"github.com/iudanet/stravadash/internal/config"
)

// PassphraseFunc asks for the token passphrase when the stored tokens are
// encrypted and none was configured
type PassphraseFunc func() (string, error)

// App holds the opened dependencies; Close releases them
type App struct {
	Tokens *boltdb.Storage
	Cache  *sqlite.Storage
	Client *api.Client
	Data   *data.Service
	Auth   *auth.Service
	logger *slog.Logger
}

// Open opens both databases, loads the credential and warms the dashboard state
// from the cache. prompt may be nil.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger, prompt PassphraseFunc) (*App, error) {
	tokens, err := boltdb.New(ctx, cfg.TokenDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open token database: %w", err)
	}

	cache, err := sqlite.New(ctx, cfg.CacheDB)
	if err != nil {
		_ = tokens.Close()
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	a := &App{Tokens: tokens, Cache: cache, logger: logger}
	if err := a.init(ctx, cfg, prompt); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, cfg config.Config, prompt PassphraseFunc) error {
	store, client, err := a.openClient(ctx, cfg, cfg.Passphrase)
	if errors.Is(err, auth.ErrPassphraseRequired) && prompt != nil {
		passphrase, perr := prompt()
		if perr != nil {
			return fmt.Errorf("failed to read passphrase: %w", perr)
		}
		store, client, err = a.openClient(ctx, cfg, passphrase)
	}
	if err != nil {
		return err
	}

	a.Client = client
	a.Data = data.NewService(client,
		data.WithCache(a.Cache),
		data.WithMetadata(a.Tokens),
		data.WithLogger(a.logger),
	)
	if err := a.Data.Warm(ctx); err != nil {
		// без кэша dashboard работает, просто без устаревших данных
		a.logger.Warn("failed to warm state from cache", "error", err)
	}

	a.Auth = auth.NewService(auth.OAuthConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AuthURL:      cfg.AuthURL,
		TokenURL:     cfg.TokenURL,
		RedirectURL:  cfg.RedirectURL,
	}, store, a.Cache, a.logger)
	a.Auth.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})

	return nil
}

// openClient builds the credential store for passphrase and loads the credential through it
func (a *App) openClient(ctx context.Context, cfg config.Config, passphrase string) (*auth.CredentialStore, *api.Client, error) {
	var key []byte
	if passphrase != "" {
		var err error
		if key, err = auth.UnlockKey(ctx, a.Tokens, passphrase); err != nil {
			return nil, nil, err
		}
	}

	store, err := auth.NewCredentialStore(a.Tokens, key)
	if err != nil {
		return nil, nil, err
	}

	client, err := api.NewClient(ctx, api.Config{
		BaseURL:      cfg.APIBaseURL,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		MaxPages:     cfg.MaxPages,
		Timeout:      cfg.HTTPTimeout,
	}, store, api.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	return store, client, nil
}

// Close закрывает базы; ошибки только логируются
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.logger.Error("failed to close cache", "error", err)
		}
	}
	if a.Tokens != nil {
		if err := a.Tokens.Close(); err != nil {
			a.logger.Error("failed to close token database", "error", err)
		}
	}
}
