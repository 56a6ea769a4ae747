// Package api описывает JSON-ответы локального dashboard API.
// The same types are printed by the CLI, so a UI can consume either.
package api

import (
	"github.com/iudanet/stravadash/internal/models"
)

// StaleHeader is set to "true" when the response was served from the local cache
// because the upstream call failed
const StaleHeader = "X-Stale"

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse представляет ответ /health
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	LastFetch     string `json:"last_fetch,omitempty"` // RFC 3339, пусто если загрузки не было
	Authenticated bool   `json:"authenticated"`
	TokenExpired  bool   `json:"token_expired"`
}

// ActivitiesResponse is one page of activities, optionally filtered
type ActivitiesResponse struct {
	Activities []models.ActivitySummary `json:"activities"`
	Types      []string                 `json:"types,omitempty"` // типы до фильтрации
	Page       int                      `json:"page,omitempty"`  // 0 для полного списка
	PerPage    int                      `json:"per_page,omitempty"`
	Count      int                      `json:"count"`
}

// SummaryResponse объединяет агрегаты по загруженным активностям.
// Partial is set when the aggregates cover only part of the history because a
// full load has not succeeded yet.
type SummaryResponse struct {
	Period      *models.PeriodSummary   `json:"period,omitempty"`
	Records     []models.PersonalRecord `json:"records"`
	Progression []models.MonthlyTotals  `json:"progression"`
	Summary     models.Summary          `json:"summary"`
	Partial     bool                    `json:"partial"`
}
