package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stravadash/internal/client/auth"
	"github.com/iudanet/stravadash/internal/client/data"
	"github.com/iudanet/stravadash/internal/client/storage/sqlite"
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/internal/polyline"
	"github.com/iudanet/stravadash/pkg/api"
)

func newRouteCli(t *testing.T) *testCli {
	t.Helper()

	tc := newTestCli(&data.StravaMock{
		ListActivitiesFunc: func(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	}, nil)
	require.NoError(t, tc.cli.Run(context.Background(), "activities", nil))
	tc.out.Reset()
	return tc
}

func TestRoute_GeoJSON(t *testing.T) {
	tc := newRouteCli(t)

	require.NoError(t, tc.cli.Run(context.Background(), "route", []string{"3"}))

	var feature api.RouteFeature
	require.NoError(t, json.Unmarshal(tc.out.Bytes(), &feature))
	assert.Equal(t, "Evening Run", feature.Properties.Name)
	assert.Equal(t, 3, feature.Properties.Points)
	require.Len(t, feature.Geometry.Coordinates, 3)
	assert.Equal(t, polyline.Coordinate{-120.2, 38.5}, feature.Geometry.Coordinates[0])
	assert.Empty(t, tc.strava.GetActivityCalls())
}

func TestRoute_GPX(t *testing.T) {
	tc := newRouteCli(t)

	require.NoError(t, tc.cli.Run(context.Background(), "route", []string{"3", "-format", "gpx"}))

	out := tc.out.String()
	assert.Contains(t, out, `<gpx version="1.1"`)
	assert.Contains(t, out, `lat="38.5" lon="-120.2"`)
	assert.Contains(t, out, "<name>Evening Run</name>")
	assert.Contains(t, out, "<time>2024-03-10T18:00:00Z</time>")
}

func TestRoute_Errors(t *testing.T) {
	tc := newRouteCli(t)
	tc.strava.GetActivityFunc = func(ctx context.Context, id int64) (*models.ActivityDetail, error) {
		return &models.ActivityDetail{ActivitySummary: models.ActivitySummary{ID: id}}, nil
	}
	ctx := context.Background()

	require.Error(t, tc.cli.Run(ctx, "route", []string{"3", "-format", "kml"}))
	require.ErrorIs(t, tc.cli.Run(ctx, "route", []string{"2"}), data.ErrNoRoute)
}

func TestRoute_FromCache(t *testing.T) {
	ctx := context.Background()
	cache, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	detail := &models.ActivityDetail{ActivitySummary: models.ActivitySummary{ID: 5}}
	detail.Map.Polyline = "_p~iF~ps|U"
	require.NoError(t, cache.SaveActivityDetail(ctx, detail))

	strava := &data.StravaMock{
		GetActivityFunc: func(ctx context.Context, id int64) (*models.ActivityDetail, error) {
			return nil, errUpstream
		},
	}
	mockIO, out := newTestIO()
	c := New(mockIO, &auth.AuthServiceMock{}, fakeSession{}, data.NewService(strava, data.WithCache(cache)))

	require.NoError(t, c.Run(ctx, "route", []string{"5", "-detailed"}))

	// вывод остается валидным GeoJSON
	var feature api.RouteFeature
	require.NoError(t, json.Unmarshal(out.Bytes(), &feature))
	assert.True(t, feature.Properties.Stale)
	assert.Equal(t, []polyline.Coordinate{{-120.2, 38.5}}, feature.Geometry.Coordinates)

	out.Reset()
	require.ErrorIs(t, c.Run(ctx, "route", []string{"6", "-detailed"}), errUpstream)
}

func TestRoute_FreshIsNotStale(t *testing.T) {
	tc := newRouteCli(t)

	require.NoError(t, tc.cli.Run(context.Background(), "route", []string{"3"}))
	assert.NotContains(t, tc.out.String(), `"stale"`)
}

func TestRoutes(t *testing.T) {
	tc := newTestCli(&data.StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			activities := sampleActivities()
			activities[2].Map.SummaryPolyline = "_p~iF~ps|U"
			return activities, nil
		},
	}, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    []string
		wantIDs []int64
	}{
		{name: "all", wantIDs: []int64{3, 1}},
		{name: "by type", args: []string{"-type", "Run", "-to", "2024-02-01"}, wantIDs: []int64{1}},
		{name: "no match", args: []string{"-type", "Ride"}, wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc.out.Reset()
			require.NoError(t, tc.cli.Run(ctx, "routes", tt.args))

			var fc api.FeatureCollection
			require.NoError(t, json.Unmarshal(tc.out.Bytes(), &fc))
			assert.Equal(t, "FeatureCollection", fc.Type)
			ids := make([]int64, 0, len(fc.Features))
			for _, f := range fc.Features {
				ids = append(ids, f.Properties.ActivityID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	require.Error(t, tc.cli.Run(ctx, "routes", []string{"-from", "March"}))
}
