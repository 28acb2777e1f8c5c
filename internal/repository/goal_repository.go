package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	var parent interface{}
	if goal.ParentID != "" {
		parent = goal.ParentID
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goals (id, user_id, name, parent_id, is_completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.ID,
		goal.UserID,
		goal.Name,
		parent,
		boolToInt(goal.IsCompleted),
		formatTime(goal.CreatedAt),
		formatTime(goal.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	var parent interface{}
	if goal.ParentID != "" {
		parent = goal.ParentID
	}
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE goals
		 SET name = ?, parent_id = ?, is_completed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		goal.Name,
		parent,
		boolToInt(goal.IsCompleted),
		formatTime(goal.UpdatedAt),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireAffected(result, "update goal")
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id string) (*model.Goal, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, parent_id, is_completed, created_at, updated_at
		 FROM goals WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanGoal(row)
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, name, parent_id, is_completed, created_at, updated_at
		 FROM goals WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireAffected(result, "delete goal")
}

func scanGoal(s scanner) (*model.Goal, error) {
	var goal model.Goal
	var parent sql.NullString
	var isCompleted int
	var createdAt, updatedAt string
	err := s.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&parent,
		&isCompleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	goal.ParentID = parent.String
	goal.IsCompleted = isCompleted != 0

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal updated_at: %w", err)
	}
	goal.CreatedAt = parsedCreatedAt
	goal.UpdatedAt = parsedUpdatedAt

	return &goal, nil
}
