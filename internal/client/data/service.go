// Package data keeps the dashboard state: the athlete, the loaded activities and
// stats, together with the last load error. A failed load never discards data that
// was loaded before, and every successful load is written through to the local cache.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/stravadash/internal/client/api"
	"github.com/iudanet/stravadash/internal/client/storage"
	"github.com/iudanet/stravadash/internal/models"
	"github.com/iudanet/stravadash/internal/polyline"
)

// ErrNoAthleteID is returned by LoadStats when the athlete id cannot be determined
var ErrNoAthleteID = errors.New("athlete id is unknown")

// ErrNoRoute is returned when the activity has no recorded polyline
var ErrNoRoute = errors.New("activity has no route")

//go:generate moq -out strava_mock.go . Strava

// Strava is the part of api.Client the service reads from
type Strava interface {
	GetAthlete(ctx context.Context) (*models.Athlete, error)
	ListActivities(ctx context.Context, page, perPage int) ([]models.ActivitySummary, error)
	ListAllActivities(ctx context.Context) ([]models.ActivitySummary, error)
	GetActivity(ctx context.Context, id int64) (*models.ActivityDetail, error)
	GetActivityLaps(ctx context.Context, id int64) ([]models.Lap, error)
	GetActivityStreams(ctx context.Context, id int64, keys ...string) ([]models.ActivityStream, error)
	GetAthleteStats(ctx context.Context, athleteID int64) (*models.AthleteStats, error)
}

// Service holds the dashboard state
type Service struct {
	err        error
	strava     Strava
	cache      storage.ActivityCache
	meta       storage.MetadataStorage
	logger     *slog.Logger
	now        func() time.Time
	athlete    *models.Athlete
	stats      *models.AthleteStats
	activities []models.ActivitySummary
	loading    atomic.Int32
	mu         sync.RWMutex
	complete   bool
}

// Option configures a Service
type Option func(*Service)

// WithCache enables write-through caching and Warm
func WithCache(cache storage.ActivityCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithMetadata records the time of the last full activity fetch
func WithMetadata(meta storage.MetadataStorage) Option {
	return func(s *Service) {
		s.meta = meta
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new data service
func NewService(strava Strava, opts ...Option) *Service {
	s := &Service{
		strava: strava,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Athlete returns the loaded athlete or nil
func (s *Service) Athlete() *models.Athlete {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.athlete
}

// Activities returns a copy of the loaded activities
func (s *Service) Activities() []models.ActivitySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ActivitySummary, len(s.activities))
	copy(out, s.activities)
	return out
}

// Stats returns the loaded stats or nil
func (s *Service) Stats() *models.AthleteStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Err returns the error of the last load, nil if it succeeded
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Complete reports whether the held activities come from a successful full load.
// A page load, a partial full load or a warm start from the cache leave it false.
func (s *Service) Complete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.complete
}

// Loading reports whether a load is in progress
func (s *Service) Loading() bool {
	return s.loading.Load() > 0
}

// Summary считает сводку по загруженным активностям
func (s *Service) Summary() models.Summary {
	return Summarize(s.Activities())
}

// Records returns personal records over the loaded activities
func (s *Service) Records() []models.PersonalRecord {
	return PersonalRecords(s.Activities())
}

// Progression returns monthly totals over the loaded activities
func (s *Service) Progression() []models.MonthlyTotals {
	return Progression(s.Activities(), s.now())
}

// Filtered returns the loaded activities matching f
func (s *Service) Filtered(f Filter) []models.ActivitySummary {
	return FilterActivities(s.Activities(), f)
}

// PeriodSummary totals the loaded activities of period p shifted by offset
func (s *Service) PeriodSummary(p Period, offset int) models.PeriodSummary {
	return PeriodSummary(s.Activities(), p, offset, s.now())
}

// AllRoutes decodes the summary routes of the loaded activities matching f
func (s *Service) AllRoutes(f Filter) []Route {
	routes, skipped := Routes(s.Filtered(f))
	if skipped > 0 {
		s.logger.Warn("skipped malformed activity polylines", "count", skipped)
	}
	return routes
}

// begin marks a load as started and clears the previous error
func (s *Service) begin() func() {
	s.loading.Add(1)
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
	return func() { s.loading.Add(-1) }
}

// fail records err; loaded data stays untouched
func (s *Service) fail(op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.logger.Warn("load failed, keeping previous data", "op", op, "error", err)
	return err
}

// LoadAthlete загружает профиль атлета
func (s *Service) LoadAthlete(ctx context.Context) error {
	defer s.begin()()

	athlete, err := s.strava.GetAthlete(ctx)
	if err != nil {
		return s.fail("load athlete", err)
	}

	s.mu.Lock()
	s.athlete = athlete
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SaveAthlete(ctx, athlete); err != nil {
			s.logger.Error("failed to cache athlete", "error", err)
		}
	}
	return nil
}

// LoadActivities загружает одну страницу активностей и заменяет ею список
func (s *Service) LoadActivities(ctx context.Context, page, perPage int) error {
	defer s.begin()()

	activities, err := s.strava.ListActivities(ctx, page, perPage)
	if err != nil {
		return s.fail("load activities", err)
	}

	s.setActivities(ctx, activities, false)
	return nil
}

// LoadAllActivities загружает все активности постранично.
// When the page limit is hit the partial list is kept and the error is still reported.
func (s *Service) LoadAllActivities(ctx context.Context) error {
	defer s.begin()()

	activities, err := s.strava.ListAllActivities(ctx)
	if err != nil {
		if len(activities) > 0 && errors.Is(err, api.ErrTooManyPages) {
			s.setActivities(ctx, activities, false)
		}
		return s.fail("load all activities", err)
	}

	s.setActivities(ctx, activities, true)

	if s.meta != nil {
		if err := s.meta.SaveLastFetchTimestamp(ctx, s.now().Unix()); err != nil {
			s.logger.Error("failed to save last fetch timestamp", "error", err)
		}
	}
	return nil
}

func (s *Service) setActivities(ctx context.Context, activities []models.ActivitySummary, complete bool) {
	s.mu.Lock()
	s.activities = activities
	s.complete = complete
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SaveActivities(ctx, activities); err != nil {
			s.logger.Error("failed to cache activities", "error", err)
		}
	}
}

// GetActivityDetail получает детали активности.
// If the API fails but the detail is cached, the cached copy is returned with stale=true
// and a nil error.
func (s *Service) GetActivityDetail(ctx context.Context, id int64) (detail *models.ActivityDetail, stale bool, err error) {
	defer s.begin()()

	detail, err = s.strava.GetActivity(ctx, id)
	if err == nil {
		if s.cache != nil {
			if cacheErr := s.cache.SaveActivityDetail(ctx, detail); cacheErr != nil {
				s.logger.Error("failed to cache activity detail", "id", id, "error", cacheErr)
			}
		}
		return detail, false, nil
	}

	err = s.fail("get activity detail", err)
	if s.cache == nil {
		return nil, false, err
	}

	cached, cacheErr := s.cache.GetActivityDetail(ctx, id)
	if cacheErr != nil {
		return nil, false, err
	}
	return cached, true, nil
}

// ActivityLaps получает круги активности; they are not cached
func (s *Service) ActivityLaps(ctx context.Context, id int64) ([]models.Lap, error) {
	laps, err := s.strava.GetActivityLaps(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("activity laps: %w", err)
	}
	return laps, nil
}

// ActivityStreams получает потоки данных активности; they are not cached
func (s *Service) ActivityStreams(ctx context.Context, id int64, keys ...string) ([]models.ActivityStream, error) {
	streams, err := s.strava.GetActivityStreams(ctx, id, keys...)
	if err != nil {
		return nil, fmt.Errorf("activity streams: %w", err)
	}
	return streams, nil
}

// LoadStats загружает статистику; если атлет еще не загружен, сначала загружает его
func (s *Service) LoadStats(ctx context.Context) error {
	defer s.begin()()

	if s.Athlete() == nil {
		if err := s.LoadAthlete(ctx); err != nil {
			return s.fail("load stats", err)
		}
	}

	athlete := s.Athlete()
	if athlete == nil || athlete.ID == 0 {
		return s.fail("load stats", ErrNoAthleteID)
	}

	stats, err := s.strava.GetAthleteStats(ctx, athlete.ID)
	if err != nil {
		return s.fail("load stats", err)
	}

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.SaveStats(ctx, athlete.ID, stats); err != nil {
			s.logger.Error("failed to cache stats", "error", err)
		}
	}
	return nil
}

// ActivityRoute returns the route of an activity in display order (lng, lat).
// detailed selects the full-resolution polyline of the detail endpoint; otherwise the
// summary polyline of an already loaded activity is used when available.
// stale is true when the detail came from the cache because the API call failed.
func (s *Service) ActivityRoute(ctx context.Context, id int64, detailed bool) (route []polyline.Coordinate, stale bool, err error) {
	var encoded string

	if !detailed {
		for _, a := range s.Activities() {
			if a.ID == id {
				encoded = a.Map.SummaryPolyline
				break
			}
		}
	}

	if encoded == "" {
		var detail *models.ActivityDetail
		detail, stale, err = s.GetActivityDetail(ctx, id)
		if err != nil {
			return nil, false, err
		}
		encoded = detail.Map.SummaryPolyline
		if detailed && detail.Map.Polyline != "" {
			encoded = detail.Map.Polyline
		}
	}

	if encoded == "" {
		return nil, stale, ErrNoRoute
	}

	coords, err := polyline.Decode(encoded)
	if err != nil {
		return nil, stale, fmt.Errorf("activity %d route: %w", id, err)
	}
	return polyline.ToDisplayOrder(coords), stale, nil
}

// Warm fills memory from the cache so stale data is available before the first load.
// Missing entries are not an error.
func (s *Service) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	athlete, err := s.cache.GetAthlete(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotCached) {
		return fmt.Errorf("warm athlete: %w", err)
	}

	activities, err := s.cache.ListActivities(ctx)
	if err != nil {
		return fmt.Errorf("warm activities: %w", err)
	}

	var stats *models.AthleteStats
	if athlete != nil {
		stats, err = s.cache.GetStats(ctx, athlete.ID)
		if err != nil && !errors.Is(err, storage.ErrNotCached) {
			return fmt.Errorf("warm stats: %w", err)
		}
	}

	s.mu.Lock()
	if athlete != nil {
		s.athlete = athlete
	}
	if len(activities) > 0 {
		s.activities = activities
	}
	if stats != nil {
		s.stats = stats
	}
	s.mu.Unlock()

	s.logger.Debug("state warmed from cache", "athlete", athlete != nil, "activities", len(activities), "stats", stats != nil)
	return nil
}

// LastFetch returns the time of the last successful full activity fetch, zero if unknown
func (s *Service) LastFetch(ctx context.Context) (time.Time, error) {
	if s.meta == nil {
		return time.Time{}, nil
	}
	ts, err := s.meta.GetLastFetchTimestamp(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if ts == 0 {
		return time.Time{}, nil
	}
	return time.Unix(ts, 0), nil
}
