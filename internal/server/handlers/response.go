package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	strava "github.com/iudanet/stravadash/internal/client/api"
	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/polyline"
	"github.com/iudanet/stravadash/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// markStale помечает ответ как взятый из кэша
func markStale(w http.ResponseWriter) {
	w.Header().Set(api.StaleHeader, "true")
}

// sendLoadError maps a failed load with nothing cached to a status code
func sendLoadError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "dashboard request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	sendError(logger, w, message, status)
}

func errorStatus(err error) (int, string) {
	var apiErr *strava.APIError

	switch {
	case errors.Is(err, data.ErrNoRoute):
		return http.StatusNotFound, "activity has no route"
	case strava.IsNotFound(err):
		return http.StatusNotFound, "not found on strava"
	case errors.Is(err, polyline.ErrMalformedPolyline):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, strava.ErrNoRefreshToken),
		errors.Is(err, strava.ErrRefreshFailed),
		strava.IsUnauthorized(err):
		return http.StatusUnauthorized, "strava authorization failed, run 'stravadash login'"
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests:
		return http.StatusServiceUnavailable, "strava rate limit reached, try again later"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "strava did not answer in time"
	default:
		return http.StatusBadGateway, err.Error()
	}
}
