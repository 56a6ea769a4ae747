package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/export"
	"github.com/iudanet/stravadash/pkg/api"
)

const (
	defaultPerPage = 30
	// maxPerPage ограничение Strava для per_page
	maxPerPage = 200
)

// DashboardHandler serves the dashboard state. Every handler asks data.Service for
// fresh data first; if that fails but something was loaded or cached before, the
// old data is served with X-Stale: true.
type DashboardHandler struct {
	logger *slog.Logger
	data   *data.Service
}

// NewDashboardHandler создает handler dashboard API
func NewDashboardHandler(logger *slog.Logger, dataService *data.Service) *DashboardHandler {
	return &DashboardHandler{
		logger: logger,
		data:   dataService,
	}
}

// Athlete обрабатывает GET /api/v1/athlete
func (h *DashboardHandler) Athlete(w http.ResponseWriter, r *http.Request) {
	err := h.data.LoadAthlete(r.Context())
	athlete := h.data.Athlete()
	if err != nil {
		if athlete == nil {
			sendLoadError(h.logger, w, r, err)
			return
		}
		markStale(w)
	}

	sendJSON(h.logger, w, athlete, http.StatusOK)
}

// Activities обрабатывает GET /api/v1/activities?page=&per_page= и ?all=true.
// type, from and to (YYYY-MM-DD) filter the loaded list.
func (h *DashboardHandler) Activities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := q.Get("all") == "true"

	filter, err := data.ParseFilter(q.Get("type"), q.Get("from"), q.Get("to"))
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := queryInt(q.Get("page"), 1)
	if err != nil || page < 1 {
		sendError(h.logger, w, "page must be a positive integer", http.StatusBadRequest)
		return
	}
	perPage, err := queryInt(q.Get("per_page"), defaultPerPage)
	if err != nil || perPage < 1 || perPage > maxPerPage {
		sendError(h.logger, w, "per_page must be between 1 and 200", http.StatusBadRequest)
		return
	}

	if all {
		err = h.data.LoadAllActivities(r.Context())
	} else {
		err = h.data.LoadActivities(r.Context(), page, perPage)
	}

	activities := h.data.Activities()
	if err != nil {
		if len(activities) == 0 {
			sendLoadError(h.logger, w, r, err)
			return
		}
		markStale(w)
	}

	filtered := data.FilterActivities(activities, filter)
	resp := api.ActivitiesResponse{
		Activities: filtered,
		Types:      data.ActivityTypes(activities),
		Count:      len(filtered),
	}
	if !all {
		resp.Page, resp.PerPage = page, perPage
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Activity обрабатывает GET /api/v1/activities/{id}
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	detail, stale, err := h.data.GetActivityDetail(r.Context(), id)
	if err != nil {
		sendLoadError(h.logger, w, r, err)
		return
	}
	if stale {
		markStale(w)
	}

	sendJSON(h.logger, w, detail, http.StatusOK)
}

// Route обрабатывает GET /api/v1/activities/{id}/route?detailed=true&format=gpx
// По умолчанию отдает GeoJSON Feature с LineString в порядке [lng, lat]
func (h *DashboardHandler) Route(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	detailed := q.Get("detailed") == "true"
	format := q.Get("format")
	if format == "" {
		format = "geojson"
	}
	if format != "geojson" && format != "gpx" {
		sendError(h.logger, w, "format must be geojson or gpx", http.StatusBadRequest)
		return
	}

	route, stale, err := h.data.ActivityRoute(r.Context(), id, detailed)
	if err != nil {
		sendLoadError(h.logger, w, r, err)
		return
	}
	if stale {
		markStale(w)
	}

	var name, sport string
	var start time.Time
	for _, a := range h.data.Activities() {
		if a.ID == id {
			name, sport = a.Name, a.Type
			start, _ = time.Parse(time.RFC3339, a.StartDate)
			break
		}
	}

	if format == "gpx" {
		w.Header().Set("Content-Type", "application/gpx+xml")
		w.Header().Set("Content-Disposition", "attachment; filename=\"activity-"+strconv.FormatInt(id, 10)+".gpx\"")
		err := export.WriteGPX(w, export.Track{Name: name, Type: sport, Start: start, Points: route})
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to write gpx", slog.Int64("activity_id", id), slog.Any("error", err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.NewRouteFeature(id, name, route, detailed)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode route", slog.Int64("activity_id", id), slog.Any("error", err))
	}
}

// Stats обрабатывает GET /api/v1/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	err := h.data.LoadStats(r.Context())
	stats := h.data.Stats()
	if err != nil {
		if stats == nil {
			sendLoadError(h.logger, w, r, err)
			return
		}
		markStale(w)
	}

	sendJSON(h.logger, w, stats, http.StatusOK)
}

// Summary обрабатывает GET /api/v1/summary[?refresh=true][&period=month&offset=-1]
// Считает по уже загруженным активностям; загружает все, если список неполный
// (после постраничного запроса или старта из кэша) или передан refresh
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var period data.Period
	if raw := q.Get("period"); raw != "" {
		var err error
		if period, err = data.ParsePeriod(raw); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	offset, err := queryInt(q.Get("offset"), 0)
	if err != nil || offset > 0 {
		sendError(h.logger, w, "offset must be zero or a negative integer", http.StatusBadRequest)
		return
	}

	if !h.ensureAll(w, r, q.Get("refresh") == "true") {
		return
	}

	resp := api.SummaryResponse{
		Summary:     h.data.Summary(),
		Records:     h.data.Records(),
		Progression: h.data.Progression(),
		Partial:     !h.data.Complete(),
	}
	if period != "" {
		ps := h.data.PeriodSummary(period, offset)
		resp.Period = &ps
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Routes обрабатывает GET /api/v1/routes?type=&from=&to=
// Отдает GeoJSON FeatureCollection с маршрутами всех загруженных активностей
func (h *DashboardHandler) Routes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := data.ParseFilter(q.Get("type"), q.Get("from"), q.Get("to"))
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.ensureAll(w, r, q.Get("refresh") == "true") {
		return
	}

	routes := h.data.AllRoutes(filter)
	features := make([]api.RouteFeature, 0, len(routes))
	for _, route := range routes {
		features = append(features, api.NewActivityFeature(route.Activity, route.Points))
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.NewFeatureCollection(features)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode routes", slog.Any("error", err))
	}
}

// ensureAll loads every activity unless a full list is already held.
// On failure with data held it marks the response stale; with nothing held it
// writes the error and returns false.
func (h *DashboardHandler) ensureAll(w http.ResponseWriter, r *http.Request, refresh bool) bool {
	if !refresh && h.data.Complete() {
		return true
	}

	if err := h.data.LoadAllActivities(r.Context()); err != nil {
		if len(h.data.Activities()) == 0 {
			sendLoadError(h.logger, w, r, err)
			return false
		}
		markStale(w)
	}
	return true
}

// pathID читает {id} из пути; при ошибке отвечает 400
func (h *DashboardHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		sendError(h.logger, w, "activity id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
