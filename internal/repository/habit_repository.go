package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

type HabitRepository struct {
	db *sql.DB
}

func NewHabitRepository(db *sql.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

const habitColumns = `id, user_id, name, workload_total, must, workload_unit,
		workload_per_count, recurrence, repeat_rule, start_time, end_time, timings,
		count, paused_load, completed, last_completed_at, created_at, updated_at`

func (r *HabitRepository) Create(ctx context.Context, habit *model.Habit) error {
	timings, err := marshalTimings(habit.Timings)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO habits (`+habitColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.WorkloadTotal,
		habit.Must,
		habit.WorkloadUnit,
		habit.WorkloadPerCount,
		habit.Recurrence,
		habit.Repeat,
		habit.Time,
		habit.EndTime,
		timings,
		habit.Count,
		habit.PausedLoad,
		boolToInt(habit.Completed),
		nullableTime(habit.LastCompletedAt),
		formatTime(habit.CreatedAt),
		formatTime(habit.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

func (r *HabitRepository) Update(ctx context.Context, habit *model.Habit) error {
	timings, err := marshalTimings(habit.Timings)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE habits
		 SET name = ?, workload_total = ?, must = ?, workload_unit = ?,
		     workload_per_count = ?, recurrence = ?, repeat_rule = ?,
		     start_time = ?, end_time = ?, timings = ?, count = ?,
		     paused_load = ?, completed = ?, last_completed_at = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		habit.Name,
		habit.WorkloadTotal,
		habit.Must,
		habit.WorkloadUnit,
		habit.WorkloadPerCount,
		habit.Recurrence,
		habit.Repeat,
		habit.Time,
		habit.EndTime,
		timings,
		habit.Count,
		habit.PausedLoad,
		boolToInt(habit.Completed),
		nullableTime(habit.LastCompletedAt),
		formatTime(habit.UpdatedAt),
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return requireAffected(result, "update habit")
}

func (r *HabitRepository) GetByID(ctx context.Context, userID, id string) (*model.Habit, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+habitColumns+` FROM habits WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanHabit(row)
}

func (r *HabitRepository) GetTx(ctx context.Context, tx *sql.Tx, userID, id string) (*model.Habit, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT `+habitColumns+` FROM habits WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanHabit(row)
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID string) ([]model.Habit, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+habitColumns+` FROM habits WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		habit, scanErr := scanHabit(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		habits = append(habits, *habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habits: %w", err)
	}
	return habits, nil
}

// UpdateCountersTx writes the replay-derived mutable state without touching
// the habit's definition fields.
func (r *HabitRepository) UpdateCountersTx(ctx context.Context, tx *sql.Tx, habit *model.Habit) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE habits
		 SET count = ?, paused_load = ?, completed = ?, last_completed_at = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		habit.Count,
		habit.PausedLoad,
		boolToInt(habit.Completed),
		nullableTime(habit.LastCompletedAt),
		formatTime(habit.UpdatedAt),
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return fmt.Errorf("update habit counters: %w", err)
	}
	return nil
}

func (r *HabitRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM habits WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return requireAffected(result, "delete habit")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(s scanner) (*model.Habit, error) {
	var habit model.Habit
	var timings string
	var completed int
	var lastCompletedAt sql.NullString
	var createdAt, updatedAt string
	err := s.Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&habit.WorkloadTotal,
		&habit.Must,
		&habit.WorkloadUnit,
		&habit.WorkloadPerCount,
		&habit.Recurrence,
		&habit.Repeat,
		&habit.Time,
		&habit.EndTime,
		&timings,
		&habit.Count,
		&habit.PausedLoad,
		&completed,
		&lastCompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	habit.Completed = completed != 0
	if timings != "" {
		if err := json.Unmarshal([]byte(timings), &habit.Timings); err != nil {
			return nil, fmt.Errorf("decode habit timings: %w", err)
		}
	}
	if lastCompletedAt.Valid {
		parsed, parseErr := parseTime(lastCompletedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse habit last_completed_at: %w", parseErr)
		}
		habit.LastCompletedAt = &parsed
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse habit created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse habit updated_at: %w", err)
	}
	habit.CreatedAt = parsedCreatedAt
	habit.UpdatedAt = parsedUpdatedAt

	return &habit, nil
}

func marshalTimings(timings []model.Timing) (string, error) {
	if len(timings) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(timings)
	if err != nil {
		return "", fmt.Errorf("encode timings: %w", err)
	}
	return string(raw), nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
