package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRefreshFailed matches every *RefreshFailedError
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrNoRefreshToken is returned when a refresh is needed but no refresh token is known
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrTooManyPages is returned by ListAllActivities when Config.MaxPages is reached
	ErrTooManyPages = errors.New("activity pagination exceeded page limit")
)

// RefreshFailedError is returned when the token endpoint answers with a non-2xx status.
// The previous credential is kept.
type RefreshFailedError struct {
	StatusText string
	Status     int
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("token refresh failed: %d %s", e.Status, e.StatusText)
}

// Is reports whether target is ErrRefreshFailed.
func (e *RefreshFailedError) Is(target error) bool {
	return target == ErrRefreshFailed
}

// APIError is a non-2xx answer from the Strava API after the single permitted retry.
type APIError struct {
	Endpoint   string
	StatusText string
	Message    string // поле "message" из тела ответа Strava, если есть
	Status     int
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("strava api error: %d %s", e.Status, e.StatusText)
	if e.Endpoint != "" {
		msg += " (" + e.Endpoint + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
