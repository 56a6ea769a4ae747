package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/stravadash/internal/client/storage"
	"github.com/iudanet/stravadash/pkg/api"
)

// Session is the part of api.Client the health check reports on
type Session interface {
	Credential() storage.Credential
	IsExpired() bool
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger    *slog.Logger
	session   Session
	lastFetch func(ctx context.Context) (time.Time, error)
	version   string
}

// NewHealthHandler создает новый handler для health check.
// lastFetch is usually data.Service.LastFetch.
func NewHealthHandler(logger *slog.Logger, session Session, lastFetch func(ctx context.Context) (time.Time, error), version string) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		session:   session,
		lastFetch: lastFetch,
		version:   version,
	}
}

// Health обрабатывает GET /api/v1/health
// Не обращается к Strava: только локальное состояние токенов и кэша
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	}

	if h.session != nil {
		cred := h.session.Credential()
		resp.Authenticated = cred.AccessToken != "" || cred.RefreshToken != ""
		resp.TokenExpired = resp.Authenticated && h.session.IsExpired()
	}

	if h.lastFetch != nil {
		last, err := h.lastFetch(r.Context())
		if err != nil {
			h.logger.WarnContext(r.Context(), "failed to read last fetch time", slog.Any("error", err))
		} else if !last.IsZero() {
			resp.LastFetch = last.UTC().Format(time.RFC3339)
		}
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
