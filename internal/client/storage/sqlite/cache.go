package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/stravadash/internal/client/storage"
	"github.com/iudanet/stravadash/internal/models"
)

// Compile-time check that Storage implements ActivityCache
var _ storage.ActivityCache = (*Storage)(nil)

// SaveAthlete replaces the cached athlete profile
func (s *Storage) SaveAthlete(ctx context.Context, athlete *models.Athlete) error {
	if athlete == nil {
		return fmt.Errorf("athlete is nil")
	}

	payload, err := json.Marshal(athlete)
	if err != nil {
		return fmt.Errorf("failed to marshal athlete: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// В кэше хранится только текущий атлет
	if _, err := tx.ExecContext(ctx, `DELETE FROM athlete`); err != nil {
		return fmt.Errorf("failed to clear athlete: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO athlete (id, payload, updated_at) VALUES (?, ?, ?)`,
		athlete.ID, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save athlete: %w", err)
	}

	return tx.Commit()
}

// GetAthlete returns the cached profile or storage.ErrNotCached
func (s *Storage) GetAthlete(ctx context.Context) (*models.Athlete, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM athlete ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotCached
		}
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}

	athlete := &models.Athlete{}
	if err := json.Unmarshal(payload, athlete); err != nil {
		return nil, fmt.Errorf("failed to unmarshal athlete: %w", err)
	}

	return athlete, nil
}

// SaveActivities upserts activities by id in a single transaction
func (s *Storage) SaveActivities(ctx context.Context, activities []models.ActivitySummary) error {
	if len(activities) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO activities (id, start_date, type, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for i := range activities {
		payload, err := json.Marshal(&activities[i])
		if err != nil {
			return fmt.Errorf("failed to marshal activity %d: %w", activities[i].ID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			activities[i].ID,
			activities[i].StartDate,
			activities[i].Type,
			payload,
			now,
		); err != nil {
			return fmt.Errorf("failed to save activity %d: %w", activities[i].ID, err)
		}
	}

	return tx.Commit()
}

// ListActivities returns cached activities, newest first
func (s *Storage) ListActivities(ctx context.Context) ([]models.ActivitySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM activities ORDER BY start_date DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	activities := make([]models.ActivitySummary, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		var activity models.ActivitySummary
		if err := json.Unmarshal(payload, &activity); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}

// SaveActivityDetail upserts one detailed activity
func (s *Storage) SaveActivityDetail(ctx context.Context, detail *models.ActivityDetail) error {
	if detail == nil {
		return fmt.Errorf("activity detail is nil")
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal activity detail: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO activity_details (id, payload, updated_at) VALUES (?, ?, ?)`,
		detail.ID, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save activity detail: %w", err)
	}

	return nil
}

// GetActivityDetail returns a cached detail or storage.ErrNotCached
func (s *Storage) GetActivityDetail(ctx context.Context, id int64) (*models.ActivityDetail, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM activity_details WHERE id = ?`, id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotCached
		}
		return nil, fmt.Errorf("failed to get activity detail: %w", err)
	}

	detail := &models.ActivityDetail{}
	if err := json.Unmarshal(payload, detail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity detail: %w", err)
	}

	return detail, nil
}

// SaveStats replaces cached stats for the athlete
func (s *Storage) SaveStats(ctx context.Context, athleteID int64, stats *models.AthleteStats) error {
	if stats == nil {
		return fmt.Errorf("stats is nil")
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO athlete_stats (athlete_id, payload, updated_at) VALUES (?, ?, ?)`,
		athleteID, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}

	return nil
}

// GetStats returns cached stats or storage.ErrNotCached
func (s *Storage) GetStats(ctx context.Context, athleteID int64) (*models.AthleteStats, error) {
	var payload []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM athlete_stats WHERE athlete_id = ?`, athleteID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotCached
		}
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	stats := &models.AthleteStats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	return stats, nil
}

// Clear wipes every cached payload
func (s *Storage) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"athlete", "activities", "activity_details", "athlete_stats"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}
