package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

const activityColumns = `id, user_id, kind, habit_id, habit_name, timestamp,
		amount, prev_count, new_count, duration_seconds, status, seq`

func (r *ActivityRepository) InsertTx(ctx context.Context, tx *sql.Tx, activity *model.Activity) error {
	// seq preserves insertion order for stable tie-breaks at equal timestamps.
	err := tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM activities`,
	).Scan(&activity.Seq)
	if err != nil {
		return fmt.Errorf("next activity seq: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO activities (`+activityColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID,
		activity.UserID,
		activity.Kind,
		activity.HabitID,
		activity.HabitName,
		formatTime(activity.Timestamp),
		activity.Amount,
		activity.PrevCount,
		activity.NewCount,
		activity.DurationSeconds,
		activity.Status,
		activity.Seq,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) UpdateTx(ctx context.Context, tx *sql.Tx, activity *model.Activity) error {
	result, err := tx.ExecContext(
		ctx,
		`UPDATE activities
		 SET kind = ?, habit_id = ?, habit_name = ?, timestamp = ?, amount = ?,
		     prev_count = ?, new_count = ?, duration_seconds = ?, status = ?
		 WHERE id = ? AND user_id = ?`,
		activity.Kind,
		activity.HabitID,
		activity.HabitName,
		formatTime(activity.Timestamp),
		activity.Amount,
		activity.PrevCount,
		activity.NewCount,
		activity.DurationSeconds,
		activity.Status,
		activity.ID,
		activity.UserID,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return requireAffected(result, "update activity")
}

func (r *ActivityRepository) DeleteTx(ctx context.Context, tx *sql.Tx, userID, id string) error {
	result, err := tx.ExecContext(
		ctx,
		`DELETE FROM activities WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return requireAffected(result, "delete activity")
}

func (r *ActivityRepository) GetTx(ctx context.Context, tx *sql.Tx, userID, id string) (*model.Activity, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanActivity(row)
}

// ListByHabitTx returns the habit's full chronological log, the ordering the
// replay depends on.
func (r *ActivityRepository) ListByHabitTx(ctx context.Context, tx *sql.Tx, userID, habitID string) ([]model.Activity, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE user_id = ? AND habit_id = ?
		 ORDER BY timestamp ASC, seq ASC`,
		userID,
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("list habit activities: %w", err)
	}
	return collectActivities(rows)
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string, from, until time.Time) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE user_id = ? AND timestamp >= ? AND timestamp <= ?
		 ORDER BY timestamp ASC, seq ASC`,
		userID,
		formatTime(from),
		formatTime(until),
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return collectActivities(rows)
}

func collectActivities(rows *sql.Rows) ([]model.Activity, error) {
	defer rows.Close()
	var activities []model.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

func scanActivity(s scanner) (*model.Activity, error) {
	var activity model.Activity
	var timestamp string
	err := s.Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Kind,
		&activity.HabitID,
		&activity.HabitName,
		&timestamp,
		&activity.Amount,
		&activity.PrevCount,
		&activity.NewCount,
		&activity.DurationSeconds,
		&activity.Status,
		&activity.Seq,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan activity: %w", err)
	}

	parsed, parseErr := parseTime(timestamp)
	if parseErr != nil {
		return nil, fmt.Errorf("parse activity timestamp: %w", parseErr)
	}
	activity.Timestamp = parsed
	return &activity, nil
}
