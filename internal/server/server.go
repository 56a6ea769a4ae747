// Package server exposes the dashboard state as a local JSON API for UI clients.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/server/handlers"
	"github.com/iudanet/stravadash/internal/server/middleware"
)

const (
	healthPath      = "/api/v1/health"
	shutdownTimeout = 10 * time.Second
)

// Config holds the HTTP server settings
type Config struct {
	Addr      string
	Version   string
	RateLimit int // запросов в минуту на клиента, 0 = без ограничения
	// RequestTimeout bounds a single request including the Strava calls it makes
	RequestTimeout time.Duration
}

// Server is the dashboard HTTP server
type Server struct {
	logger  *slog.Logger
	limiter *middleware.RateLimiter
	http    *http.Server
}

// New собирает маршруты и middleware
func New(cfg Config, logger *slog.Logger, dataService *data.Service, session handlers.Session) *Server {
	health := handlers.NewHealthHandler(logger, session, dataService.LastFetch, cfg.Version)
	dashboard := handlers.NewDashboardHandler(logger, dataService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, health.Health)
	mux.HandleFunc("GET /api/v1/athlete", dashboard.Athlete)
	mux.HandleFunc("GET /api/v1/activities", dashboard.Activities)
	mux.HandleFunc("GET /api/v1/activities/{id}", dashboard.Activity)
	mux.HandleFunc("GET /api/v1/activities/{id}/route", dashboard.Route)
	mux.HandleFunc("GET /api/v1/stats", dashboard.Stats)
	mux.HandleFunc("GET /api/v1/summary", dashboard.Summary)
	mux.HandleFunc("GET /api/v1/routes", dashboard.Routes)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute, logger)

	// порядок: request id -> recovery -> логирование -> rate limit -> timeout -> mux
	var handler http.Handler = mux
	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, `{"error":"Service Unavailable","message":"request timed out"}`)
	}
	handler = middleware.RateLimitMiddleware(limiter)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{healthPath})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return &Server{
		logger:  logger,
		limiter: limiter,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the full middleware chain, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run слушает адрес до отмены ctx, затем корректно завершает соединения
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
