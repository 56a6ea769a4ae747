package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	strava "github.com/iudanet/stravadash/internal/client/api"
	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/client/storage"
	"github.com/iudanet/stravadash/internal/client/storage/sqlite"
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/internal/polyline"
	"github.com/iudanet/stravadash/pkg/api"
)

var errUpstream = errors.New("strava is down")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleActivities() []models.ActivitySummary {
	return []models.ActivitySummary{
		{ID: 3, Name: "Evening Run", Type: "Run", StartDate: "2024-03-10T18:00:00Z", Distance: 10500, MovingTime: 3000, TotalElevationGain: 80.4, AverageSpeed: 3.5,
			Map: models.ActivityMap{SummaryPolyline: "_p~iF~ps|U_ulLnnqC_mqNvxq`@"}},
		{ID: 2, Name: "Long Ride", Type: "Ride", StartDate: "2024-02-03T09:00:00Z", Distance: 82000, MovingTime: 10800, TotalElevationGain: 950.6, AverageSpeed: 7.6},
	}
}

func newDashboard(t *testing.T, mock *data.StravaMock, opts ...data.Option) *DashboardHandler {
	t.Helper()
	return NewDashboardHandler(setupTestLogger(), data.NewService(mock, opts...))
}

func serve(handler http.HandlerFunc, target string, pathValues ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestDashboardHandler_Athlete(t *testing.T) {
	fail := false
	h := newDashboard(t, &data.StravaMock{
		GetAthleteFunc: func(ctx context.Context) (*models.Athlete, error) {
			if fail {
				return nil, errUpstream
			}
			return &models.Athlete{ID: 7, Firstname: "Ann"}, nil
		},
	})

	w := serve(h.Athlete, "/api/v1/athlete")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(api.StaleHeader))

	var athlete models.Athlete
	require.NoError(t, json.NewDecoder(w.Body).Decode(&athlete))
	assert.Equal(t, int64(7), athlete.ID)

	fail = true
	w = serve(h.Athlete, "/api/v1/athlete")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(api.StaleHeader))
}

func TestDashboardHandler_AthleteErrors(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantStatus int
	}{
		{name: "upstream down", err: errUpstream, wantStatus: http.StatusBadGateway},
		{name: "unauthorized", err: &strava.APIError{Status: http.StatusUnauthorized}, wantStatus: http.StatusUnauthorized},
		{name: "refresh failed", err: &strava.RefreshFailedError{Status: http.StatusBadRequest}, wantStatus: http.StatusUnauthorized},
		{name: "strava rate limit", err: &strava.APIError{Status: http.StatusTooManyRequests}, wantStatus: http.StatusServiceUnavailable},
		{name: "timeout", err: fmt.Errorf("get athlete: %w", context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newDashboard(t, &data.StravaMock{
				GetAthleteFunc: func(ctx context.Context) (*models.Athlete, error) {
					return nil, tt.err
				},
			})

			w := serve(h.Athlete, "/api/v1/athlete")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, http.StatusText(tt.wantStatus), decodeError(t, w).Error)
		})
	}
}

func TestDashboardHandler_Activities(t *testing.T) {
	mock := &data.StravaMock{
		ListActivitiesFunc: func(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	}
	h := newDashboard(t, mock)

	t.Run("paged", func(t *testing.T) {
		w := serve(h.Activities, "/api/v1/activities?page=2&per_page=50")
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.ActivitiesResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 50, resp.PerPage)

		calls := mock.ListActivitiesCalls()
		require.NotEmpty(t, calls)
		assert.Equal(t, 2, calls[len(calls)-1].Page)
	})

	t.Run("defaults", func(t *testing.T) {
		serve(h.Activities, "/api/v1/activities")
		calls := mock.ListActivitiesCalls()
		assert.Equal(t, 1, calls[len(calls)-1].Page)
		assert.Equal(t, defaultPerPage, calls[len(calls)-1].PerPage)
	})

	t.Run("all", func(t *testing.T) {
		w := serve(h.Activities, "/api/v1/activities?all=true")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, mock.ListAllActivitiesCalls(), 1)

		var resp api.ActivitiesResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Zero(t, resp.Page)
	})

	for _, target := range []string{
		"/api/v1/activities?page=0",
		"/api/v1/activities?page=abc",
		"/api/v1/activities?per_page=500",
	} {
		t.Run("bad request "+target, func(t *testing.T) {
			w := serve(h.Activities, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDashboardHandler_ActivitiesFilter(t *testing.T) {
	h := newDashboard(t, &data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	})

	tests := []struct {
		name    string
		target  string
		wantIDs []int64
	}{
		{name: "no filter", target: "/api/v1/activities?all=true", wantIDs: []int64{3, 2}},
		{name: "by type", target: "/api/v1/activities?all=true&type=Ride", wantIDs: []int64{2}},
		{name: "from", target: "/api/v1/activities?all=true&from=2024-03-01", wantIDs: []int64{3}},
		{name: "to inclusive", target: "/api/v1/activities?all=true&to=2024-02-03", wantIDs: []int64{2}},
		{name: "nothing matches", target: "/api/v1/activities?all=true&type=Swim", wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h.Activities, tt.target)
			require.Equal(t, http.StatusOK, w.Code)

			var resp api.ActivitiesResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			ids := make([]int64, 0, len(resp.Activities))
			for _, a := range resp.Activities {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), resp.Count)
			assert.Equal(t, []string{"Ride", "Run"}, resp.Types)
		})
	}

	for _, target := range []string{
		"/api/v1/activities?from=2024-1-1",
		"/api/v1/activities?from=2024-03-01&to=2024-02-01",
	} {
		t.Run("bad request "+target, func(t *testing.T) {
			w := serve(h.Activities, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDashboardHandler_ActivitiesPartialList(t *testing.T) {
	h := newDashboard(t, &data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities()[:1], strava.ErrTooManyPages
		},
	})

	w := serve(h.Activities, "/api/v1/activities?all=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(api.StaleHeader))
}

func TestDashboardHandler_Activity(t *testing.T) {
	ctx := context.Background()
	cache, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	require.NoError(t, cache.SaveActivityDetail(ctx, &models.ActivityDetail{
		ActivitySummary: models.ActivitySummary{ID: 5, Name: "Cached"},
	}))

	h := newDashboard(t, &data.StravaMock{
		GetActivityFunc: func(ctx context.Context, id int64) (*models.ActivityDetail, error) {
			switch id {
			case 3:
				return &models.ActivityDetail{ActivitySummary: sampleActivities()[0], Calories: 640}, nil
			case 404:
				return nil, &strava.APIError{Status: http.StatusNotFound}
			default:
				return nil, errUpstream
			}
		},
	}, data.WithCache(cache))

	w := serve(h.Activity, "/api/v1/activities/3", "id", "3")
	require.Equal(t, http.StatusOK, w.Code)
	var detail models.ActivityDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&detail))
	assert.Equal(t, 640.0, detail.Calories)

	w = serve(h.Activity, "/api/v1/activities/5", "id", "5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(api.StaleHeader))

	w = serve(h.Activity, "/api/v1/activities/404", "id", "404")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h.Activity, "/api/v1/activities/abc", "id", "abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardHandler_Route(t *testing.T) {
	mock := &data.StravaMock{
		ListActivitiesFunc: func(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
		GetActivityFunc: func(ctx context.Context, id int64) (*models.ActivityDetail, error) {
			return &models.ActivityDetail{ActivitySummary: models.ActivitySummary{ID: id}}, nil
		},
	}
	h := newDashboard(t, mock)
	require.Equal(t, http.StatusOK, serve(h.Activities, "/api/v1/activities").Code)

	t.Run("geojson", func(t *testing.T) {
		w := serve(h.Route, "/api/v1/activities/3/route", "id", "3")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

		var feature api.RouteFeature
		require.NoError(t, json.NewDecoder(w.Body).Decode(&feature))
		assert.Equal(t, "Evening Run", feature.Properties.Name)
		require.Len(t, feature.Geometry.Coordinates, 3)
		assert.Equal(t, polyline.Coordinate{-120.2, 38.5}, feature.Geometry.Coordinates[0])
		assert.Len(t, feature.BBox, 4)
	})

	t.Run("gpx", func(t *testing.T) {
		w := serve(h.Route, "/api/v1/activities/3/route?format=gpx", "id", "3")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/gpx+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "activity-3.gpx")
		assert.Contains(t, w.Body.String(), `lat="38.5" lon="-120.2"`)
	})

	t.Run("no route", func(t *testing.T) {
		w := serve(h.Route, "/api/v1/activities/2/route", "id", "2")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "activity has no route", decodeError(t, w).Message)
	})

	t.Run("bad format", func(t *testing.T) {
		w := serve(h.Route, "/api/v1/activities/3/route?format=kml", "id", "3")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboardHandler_RouteFromCache(t *testing.T) {
	ctx := context.Background()
	cache, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	detail := &models.ActivityDetail{ActivitySummary: models.ActivitySummary{ID: 5, Name: "Cached"}}
	detail.Map.Polyline = "_p~iF~ps|U"
	require.NoError(t, cache.SaveActivityDetail(ctx, detail))

	h := newDashboard(t, &data.StravaMock{
		GetActivityFunc: func(ctx context.Context, id int64) (*models.ActivityDetail, error) {
			return nil, errUpstream
		},
	}, data.WithCache(cache))

	w := serve(h.Route, "/api/v1/activities/5/route?detailed=true", "id", "5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(api.StaleHeader))

	var feature api.RouteFeature
	require.NoError(t, json.NewDecoder(w.Body).Decode(&feature))
	assert.Equal(t, []polyline.Coordinate{{-120.2, 38.5}}, feature.Geometry.Coordinates)

	// без кэша ошибка API уходит клиенту
	w = serve(h.Route, "/api/v1/activities/6/route?detailed=true", "id", "6")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get(api.StaleHeader))
}

func TestDashboardHandler_Stats(t *testing.T) {
	h := newDashboard(t, &data.StravaMock{
		GetAthleteFunc: func(ctx context.Context) (*models.Athlete, error) {
			return &models.Athlete{ID: 7}, nil
		},
		GetAthleteStatsFunc: func(ctx context.Context, athleteID int64) (*models.AthleteStats, error) {
			return &models.AthleteStats{AllRunTotals: models.ActivityTotals{Count: 12}}, nil
		},
	})

	w := serve(h.Stats, "/api/v1/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.AthleteStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, 12, stats.AllRunTotals.Count)
}

func TestDashboardHandler_StatsErrors(t *testing.T) {
	tests := []struct {
		athlete    *models.Athlete
		err        error
		name       string
		wantStatus int
	}{
		{name: "refresh failed", err: &strava.RefreshFailedError{Status: http.StatusBadRequest}, wantStatus: http.StatusUnauthorized},
		{name: "unauthorized", err: &strava.APIError{Status: http.StatusUnauthorized}, wantStatus: http.StatusUnauthorized},
		{name: "upstream down", err: errUpstream, wantStatus: http.StatusBadGateway},
		{name: "athlete without id", athlete: &models.Athlete{Firstname: "Ann"}, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &data.StravaMock{
				GetAthleteFunc: func(ctx context.Context) (*models.Athlete, error) {
					return tt.athlete, tt.err
				},
			}
			h := newDashboard(t, mock)

			w := serve(h.Stats, "/api/v1/stats")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, http.StatusText(tt.wantStatus), decodeError(t, w).Error)
			assert.Empty(t, mock.GetAthleteStatsCalls())
		})
	}
}

func TestDashboardHandler_Summary(t *testing.T) {
	mock := &data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	}
	h := newDashboard(t, mock)

	w := serve(h.Summary, "/api/v1/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SummaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, models.Summary{Count: 2, DistanceKm: 93, ElevationM: 1031, MovingHours: 3.8}, resp.Summary)
	assert.NotEmpty(t, resp.Records)
	assert.Equal(t, "2024-02", resp.Progression[0].Month)

	// активности уже загружены
	serve(h.Summary, "/api/v1/summary")
	assert.Len(t, mock.ListAllActivitiesCalls(), 1)

	serve(h.Summary, "/api/v1/summary?refresh=true")
	assert.Len(t, mock.ListAllActivitiesCalls(), 2)
	assert.False(t, resp.Partial)
}

// Страница заменяет общий список, поэтому сводка сначала догружает все активности
func TestDashboardHandler_SummaryAfterPage(t *testing.T) {
	mock := &data.StravaMock{
		ListActivitiesFunc: func(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error) {
			return sampleActivities()[:1], nil
		},
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	}
	h := newDashboard(t, mock)

	require.Equal(t, http.StatusOK, serve(h.Activities, "/api/v1/activities?all=true").Code)
	require.Equal(t, http.StatusOK, serve(h.Activities, "/api/v1/activities?page=2&per_page=1").Code)
	require.Len(t, mock.ListAllActivitiesCalls(), 1)

	w := serve(h.Summary, "/api/v1/summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, mock.ListAllActivitiesCalls(), 2)

	var resp api.SummaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Summary.Count)
	assert.False(t, resp.Partial)
}

func TestDashboardHandler_SummaryPartial(t *testing.T) {
	h := newDashboard(t, &data.StravaMock{
		ListActivitiesFunc: func(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error) {
			return sampleActivities()[:1], nil
		},
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return nil, errUpstream
		},
	})

	require.Equal(t, http.StatusOK, serve(h.Activities, "/api/v1/activities?per_page=1").Code)

	w := serve(h.Summary, "/api/v1/summary")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(api.StaleHeader))

	var resp api.SummaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Partial)
	assert.Equal(t, 1, resp.Summary.Count)
}

func TestDashboardHandler_SummaryPeriod(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	h := newDashboard(t, &data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	}, data.WithClock(func() time.Time { return now }))

	w := serve(h.Summary, "/api/v1/summary?period=month")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SummaryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Period)
	assert.Equal(t, "2024-03-01", resp.Period.Start)
	assert.Equal(t, "2024-03-31", resp.Period.End)
	assert.Equal(t, 1, resp.Period.Totals.Count)
	assert.True(t, resp.Period.Current)
	require.NotNil(t, resp.Period.Comparison)
	assert.Equal(t, -87, resp.Period.Comparison.Distance)

	w = serve(h.Summary, "/api/v1/summary?period=month&offset=-1")
	require.Equal(t, http.StatusOK, w.Code)
	resp = api.SummaryResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Period)
	assert.Equal(t, "2024-02-01", resp.Period.Start)
	assert.Equal(t, []models.TypeCount{{Type: "Ride", Count: 1}}, resp.Period.Types)
	assert.Nil(t, resp.Period.Comparison)

	for _, target := range []string{
		"/api/v1/summary?period=day",
		"/api/v1/summary?period=week&offset=1",
		"/api/v1/summary?period=week&offset=x",
	} {
		t.Run("bad request "+target, func(t *testing.T) {
			w := serve(h.Summary, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDashboardHandler_Routes(t *testing.T) {
	activities := append(sampleActivities(), models.ActivitySummary{
		ID: 4, Name: "Short Ride", Type: "Ride", StartDate: "2024-03-12T08:00:00Z",
		Map: models.ActivityMap{SummaryPolyline: "_p~iF~ps|U"},
	})
	mock := &data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return activities, nil
		},
	}
	h := newDashboard(t, mock)

	decode := func(t *testing.T, w *httptest.ResponseRecorder) api.FeatureCollection {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
		var fc api.FeatureCollection
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fc))
		return fc
	}

	t.Run("all routes", func(t *testing.T) {
		fc := decode(t, serve(h.Routes, "/api/v1/routes"))
		assert.Equal(t, "FeatureCollection", fc.Type)
		require.Len(t, fc.Features, 2)
		assert.Equal(t, int64(3), fc.Features[0].Properties.ActivityID)
		assert.Equal(t, "Run", fc.Features[0].Properties.Type)
		assert.Equal(t, "Ride", fc.Features[1].Properties.Type)
		assert.InDeltaSlice(t, []float64{-126.453, 38.5, -120.2, 43.252}, fc.BBox, 1e-9)
	})

	t.Run("filtered", func(t *testing.T) {
		fc := decode(t, serve(h.Routes, "/api/v1/routes?type=Ride&from=2024-03-01"))
		require.Len(t, fc.Features, 1)
		assert.Equal(t, int64(4), fc.Features[0].Properties.ActivityID)
		assert.InDeltaSlice(t, []float64{-120.2, 38.5, -120.2, 38.5}, fc.BBox, 1e-9)
	})

	t.Run("nothing matches", func(t *testing.T) {
		fc := decode(t, serve(h.Routes, "/api/v1/routes?type=Swim"))
		assert.Empty(t, fc.Features)
		assert.Nil(t, fc.BBox)
	})

	t.Run("bad date", func(t *testing.T) {
		w := serve(h.Routes, "/api/v1/routes?to=tomorrow")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Len(t, mock.ListAllActivitiesCalls(), 1)
}

func TestDashboardHandler_SummaryWithoutData(t *testing.T) {
	h := newDashboard(t, &data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return nil, errUpstream
		},
	})

	w := serve(h.Summary, "/api/v1/summary")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

type fakeSession struct {
	cred    storage.Credential
	expired bool
}

func (s fakeSession) Credential() storage.Credential { return s.cred }
func (s fakeSession) IsExpired() bool                { return s.expired }

func TestHealthHandler_Health(t *testing.T) {
	last := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		session   Session
		lastFetch func(ctx context.Context) (time.Time, error)
		name      string
		want      api.HealthResponse
	}{
		{
			name: "no session",
			want: api.HealthResponse{Status: "ok", Version: "1.2.3"},
		},
		{
			name:      "authenticated with fetch time",
			session:   fakeSession{cred: storage.Credential{AccessToken: "a"}},
			lastFetch: func(ctx context.Context) (time.Time, error) { return last, nil },
			want:      api.HealthResponse{Status: "ok", Version: "1.2.3", Authenticated: true, LastFetch: "2024-03-15T12:00:00Z"},
		},
		{
			name:      "expired token and broken metadata",
			session:   fakeSession{cred: storage.Credential{RefreshToken: "r"}, expired: true},
			lastFetch: func(ctx context.Context) (time.Time, error) { return time.Time{}, errors.New("bolt closed") },
			want:      api.HealthResponse{Status: "ok", Version: "1.2.3", Authenticated: true, TokenExpired: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(setupTestLogger(), tt.session, tt.lastFetch, "1.2.3")

			w := serve(handler.Health, "/api/v1/health")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp api.HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want int
	}{
		{name: "no route", err: data.ErrNoRoute, want: http.StatusNotFound},
		{name: "strava 404", err: fmt.Errorf("get activity 1: %w", &strava.APIError{Status: http.StatusNotFound}), want: http.StatusNotFound},
		{name: "bad polyline", err: &polyline.DecodeError{Offset: 3, Reason: "character out of range"}, want: http.StatusUnprocessableEntity},
		{name: "no refresh token", err: strava.ErrNoRefreshToken, want: http.StatusUnauthorized},
		{name: "no athlete id", err: data.ErrNoAthleteID, want: http.StatusBadGateway},
		{name: "other", err: errUpstream, want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := errorStatus(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, msg)
		})
	}
}
