package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stravadash/internal/models"
)

// пятница
var periodNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestParsePeriod(t *testing.T) {
	for _, raw := range []string{"week", "month", "year", "all"} {
		p, err := ParsePeriod(raw)
		require.NoError(t, err)
		assert.Equal(t, Period(raw), p)
	}

	_, err := ParsePeriod("day")
	require.ErrorIs(t, err, ErrUnknownPeriod)
	_, err = ParsePeriod("")
	require.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestPeriodRange(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		period    Period
		offset    int
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "this week", period: PeriodWeek, now: periodNow, wantStart: date(2024, 3, 11), wantEnd: date(2024, 3, 18)},
		{name: "previous week", period: PeriodWeek, offset: -1, now: periodNow, wantStart: date(2024, 3, 4), wantEnd: date(2024, 3, 11)},
		{name: "sunday belongs to the week before", period: PeriodWeek, now: date(2024, 3, 10), wantStart: date(2024, 3, 4), wantEnd: date(2024, 3, 11)},
		{name: "monday starts the week", period: PeriodWeek, now: date(2024, 3, 11), wantStart: date(2024, 3, 11), wantEnd: date(2024, 3, 18)},
		{name: "this month", period: PeriodMonth, now: periodNow, wantStart: date(2024, 3, 1), wantEnd: date(2024, 4, 1)},
		{name: "month across year", period: PeriodMonth, offset: -3, now: periodNow, wantStart: date(2023, 12, 1), wantEnd: date(2024, 1, 1)},
		{name: "previous year", period: PeriodYear, offset: -1, now: periodNow, wantStart: date(2023, 1, 1), wantEnd: date(2024, 1, 1)},
		{name: "all has no bounds", period: PeriodAll, now: periodNow},
		{
			name:      "local time is converted to utc",
			period:    PeriodMonth,
			now:       time.Date(2024, 4, 1, 1, 0, 0, 0, time.FixedZone("MSK", 3*60*60)),
			wantStart: date(2024, 3, 1),
			wantEnd:   date(2024, 4, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodRange(tt.period, tt.offset, tt.now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPeriodSummary(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		offset int
		want   models.PeriodSummary
	}{
		{
			name:   "current month against february",
			period: PeriodMonth,
			want: models.PeriodSummary{
				Period:        "month",
				Start:         "2024-03-01",
				End:           "2024-03-31",
				Types:         []models.TypeCount{{Type: "Run", Count: 1}},
				Totals:        models.Summary{Count: 1, DistanceKm: 11, ElevationM: 80, MovingHours: 0.8},
				AvgDistanceKm: 10.5,
				// 14.5 дня -> 3 недели
				PerWeek: 0.3,
				Current: true,
				Comparison: &models.PeriodComparison{
					Count:       0,
					Distance:    -87,
					Elevation:   -92,
					MovingTime:  -72,
					AvgDistance: -87,
				},
			},
		},
		{
			name:   "previous month against january",
			period: PeriodMonth,
			offset: -1,
			want: models.PeriodSummary{
				Period:        "month",
				Start:         "2024-02-01",
				End:           "2024-02-29",
				Types:         []models.TypeCount{{Type: "Ride", Count: 1}},
				Totals:        models.Summary{Count: 1, DistanceKm: 82, ElevationM: 951, MovingHours: 3},
				Offset:        -1,
				AvgDistanceKm: 82,
				// 29 дней -> 5 недель
				PerWeek:    0.2,
				Comparison: &models.PeriodComparison{Distance: 1477, Elevation: 7822, MovingTime: 683, AvgDistance: 1477},
			},
		},
		{
			name:   "empty week",
			period: PeriodWeek,
			want: models.PeriodSummary{
				Period:     "week",
				Start:      "2024-03-11",
				End:        "2024-03-17",
				Types:      []models.TypeCount{},
				Current:    true,
				Comparison: &models.PeriodComparison{Count: -100, Distance: -100, Elevation: -100, MovingTime: -100, AvgDistance: -100},
			},
		},
		{
			name:   "all time",
			period: PeriodAll,
			want: models.PeriodSummary{
				Period:        "all",
				Types:         []models.TypeCount{{Type: "Run", Count: 2}, {Type: "Ride", Count: 1}},
				Totals:        models.Summary{Count: 3, DistanceKm: 98, ElevationM: 1043, MovingHours: 4.2},
				AvgDistanceKm: 32.6,
				// с 2024-01-05: 70 дней и 5 часов -> 11 недель
				PerWeek: 0.3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeriodSummary(sampleActivities(), tt.period, tt.offset, periodNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodSummary_NoPreviousPeriod(t *testing.T) {
	got := PeriodSummary(sampleActivities(), PeriodYear, 0, periodNow)

	assert.Equal(t, "2024-01-01", got.Start)
	assert.Equal(t, "2024-12-31", got.End)
	assert.Equal(t, 3, got.Totals.Count)
	assert.Nil(t, got.Comparison)
}

func TestTypeDistribution(t *testing.T) {
	activities := []models.ActivitySummary{
		{Type: "Swim"}, {Type: "Ride"}, {Type: "Run"}, {Type: "Run"},
	}

	assert.Equal(t, []models.TypeCount{
		{Type: "Run", Count: 2},
		{Type: "Ride", Count: 1},
		{Type: "Swim", Count: 1},
	}, TypeDistribution(activities))
	assert.Empty(t, TypeDistribution(nil))
}

func TestService_PeriodSummary(t *testing.T) {
	svc := NewService(&StravaMock{
		ListAllActivitiesFunc: func(ctx context.Context) ([]models.ActivitySummary, error) {
			return sampleActivities(), nil
		},
	}, WithClock(func() time.Time { return periodNow }))
	require.NoError(t, svc.LoadAllActivities(context.Background()))

	got := svc.PeriodSummary(PeriodWeek, -1)
	assert.Equal(t, "2024-03-04", got.Start)
	assert.Equal(t, 1, got.Totals.Count)
	assert.Equal(t, 1.0, got.PerWeek)
	assert.False(t, got.Current)
}
