package storage

import (
	"context"

	"github.com/iudanet/stravadash/internal/models"
)

// ActivityCache keeps the last successfully fetched Strava payloads so the
// dashboard can serve stale data when the upstream API is unavailable.
// Payloads are stored unchanged; the cache never edits them.
type ActivityCache interface {
	// SaveAthlete replaces the cached athlete profile
	SaveAthlete(ctx context.Context, athlete *models.Athlete) error

	// GetAthlete returns the cached profile or ErrNotCached
	GetAthlete(ctx context.Context) (*models.Athlete, error)

	// SaveActivities upserts activities by id
	SaveActivities(ctx context.Context, activities []models.ActivitySummary) error

	// ListActivities returns cached activities, newest first
	ListActivities(ctx context.Context) ([]models.ActivitySummary, error)

	// SaveActivityDetail upserts one detailed activity
	SaveActivityDetail(ctx context.Context, detail *models.ActivityDetail) error

	// GetActivityDetail returns a cached detail or ErrNotCached
	GetActivityDetail(ctx context.Context, id int64) (*models.ActivityDetail, error)

	// SaveStats replaces cached stats for the athlete
	SaveStats(ctx context.Context, athleteID int64, stats *models.AthleteStats) error

	// GetStats returns cached stats or ErrNotCached
	GetStats(ctx context.Context, athleteID int64) (*models.AthleteStats, error)

	// Clear wipes every cached payload (logout)
	Clear(ctx context.Context) error
}
