package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/stravadash/internal/models"
)

// AllActivitiesPageSize is the page size used by ListAllActivities
const AllActivitiesPageSize = 100

// DefaultStreamKeys are requested when GetActivityStreams gets no keys
var DefaultStreamKeys = []string{"time", "distance", "latlng", "altitude", "heartrate"}

// GetAthlete получает профиль авторизованного атлета
// GET /athlete
func (c *Client) GetAthlete(ctx context.Context) (*models.Athlete, error) {
	athlete, err := Fetch[models.Athlete](ctx, c, "/athlete", nil)
	if err != nil {
		return nil, fmt.Errorf("get athlete: %w", err)
	}
	return &athlete, nil
}

// ListActivities получает одну страницу активностей
// GET /athlete/activities?page=&per_page=
func (c *Client) ListActivities(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error) {
	activities, err := Fetch[[]models.ActivitySummary](ctx, c, "/athlete/activities", map[string]string{
		"page":     strconv.Itoa(page),
		"per_page": strconv.Itoa(perPage),
	})
	if err != nil {
		return nil, fmt.Errorf("list activities page %d: %w", page, err)
	}
	return activities, nil
}

// ListAllActivities requests pages of AllActivitiesPageSize until a page comes back
// short. It stops early on context cancellation or when Config.MaxPages pages were
// read without reaching the end (ErrTooManyPages); in both cases the activities
// collected so far are returned with the error.
func (c *Client) ListAllActivities(ctx context.Context) ([]models.ActivitySummary, error) {
	all := make([]models.ActivitySummary, 0, AllActivitiesPageSize)

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		if c.cfg.MaxPages > 0 && page > c.cfg.MaxPages {
			c.logger.Warn("activity pagination stopped at page limit", "max_pages", c.cfg.MaxPages, "loaded", len(all))
			return all, ErrTooManyPages
		}

		batch, err := c.ListActivities(ctx, page, AllActivitiesPageSize)
		if err != nil {
			return all, err
		}
		all = append(all, batch...)

		if len(batch) < AllActivitiesPageSize {
			c.logger.Debug("all activities loaded", "pages", page, "count", len(all))
			return all, nil
		}
	}
}

// GetActivity получает детали активности с полным треком
// GET /activities/{id}
func (c *Client) GetActivity(ctx context.Context, id int64) (*models.ActivityDetail, error) {
	detail, err := Fetch[models.ActivityDetail](ctx, c, fmt.Sprintf("/activities/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get activity %d: %w", id, err)
	}
	return &detail, nil
}

// GetActivityLaps получает круги активности
// GET /activities/{id}/laps
func (c *Client) GetActivityLaps(ctx context.Context, id int64) ([]models.Lap, error) {
	laps, err := Fetch[[]models.Lap](ctx, c, fmt.Sprintf("/activities/%d/laps", id), nil)
	if err != nil {
		return nil, fmt.Errorf("get laps of activity %d: %w", id, err)
	}
	return laps, nil
}

// GetActivityStreams получает потоки данных активности
// GET /activities/{id}/streams?keys=...&key_by_type=false
func (c *Client) GetActivityStreams(ctx context.Context, id int64, keys ...string) ([]models.ActivityStream, error) {
	if len(keys) == 0 {
		keys = DefaultStreamKeys
	}

	streams, err := Fetch[[]models.ActivityStream](ctx, c, fmt.Sprintf("/activities/%d/streams", id), map[string]string{
		"keys":        strings.Join(keys, ","),
		"key_by_type": "false",
	})
	if err != nil {
		return nil, fmt.Errorf("get streams of activity %d: %w", id, err)
	}
	return streams, nil
}

// GetAthleteStats получает статистику атлета
// GET /athletes/{id}/stats
func (c *Client) GetAthleteStats(ctx context.Context, athleteID int64) (*models.AthleteStats, error) {
	stats, err := Fetch[models.AthleteStats](ctx, c, fmt.Sprintf("/athletes/%d/stats", athleteID), nil)
	if err != nil {
		return nil, fmt.Errorf("get stats of athlete %d: %w", athleteID, err)
	}
	return &stats, nil
}
