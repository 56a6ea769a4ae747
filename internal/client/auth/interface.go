package auth

import (
	"context"
)

//go:generate moq -out service_mock.go . AuthService

// AuthService defines the authentication operations used by the CLI.
// Login is the only place a credential is created; afterwards api.Client
// refreshes and persists it on its own.
type AuthService interface {
	// AuthCodeURL возвращает URL страницы авторизации Strava
	AuthCodeURL(state string) string

	// Login обменивает authorization code на токены и сохраняет их
	Login(ctx context.Context, code string) (*LoginResult, error)

	// Logout удаляет локальный credential и кэш
	Logout(ctx context.Context) error
}
