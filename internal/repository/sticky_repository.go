package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

type StickyRepository struct {
	db *sql.DB
}

func NewStickyRepository(db *sql.DB) *StickyRepository {
	return &StickyRepository{db: db}
}

func (r *StickyRepository) Create(ctx context.Context, sticky *model.Sticky) error {
	goalIDs, habitIDs, tagIDs, err := marshalStickyRefs(sticky)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO stickies (id, user_id, text, goal_ids, habit_ids, tag_ids, done, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sticky.ID,
		sticky.UserID,
		sticky.Text,
		goalIDs,
		habitIDs,
		tagIDs,
		boolToInt(sticky.Done),
		formatTime(sticky.CreatedAt),
		formatTime(sticky.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create sticky: %w", err)
	}
	return nil
}

func (r *StickyRepository) Update(ctx context.Context, sticky *model.Sticky) error {
	goalIDs, habitIDs, tagIDs, err := marshalStickyRefs(sticky)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE stickies
		 SET text = ?, goal_ids = ?, habit_ids = ?, tag_ids = ?, done = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		sticky.Text,
		goalIDs,
		habitIDs,
		tagIDs,
		boolToInt(sticky.Done),
		formatTime(sticky.UpdatedAt),
		sticky.ID,
		sticky.UserID,
	)
	if err != nil {
		return fmt.Errorf("update sticky: %w", err)
	}
	return requireAffected(result, "update sticky")
}

func (r *StickyRepository) ListByUser(ctx context.Context, userID string) ([]model.Sticky, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, text, goal_ids, habit_ids, tag_ids, done, created_at, updated_at
		 FROM stickies WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stickies: %w", err)
	}
	defer rows.Close()

	var stickies []model.Sticky
	for rows.Next() {
		sticky, scanErr := scanSticky(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		stickies = append(stickies, *sticky)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stickies: %w", err)
	}
	return stickies, nil
}

func (r *StickyRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM stickies WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete sticky: %w", err)
	}
	return requireAffected(result, "delete sticky")
}

func scanSticky(s scanner) (*model.Sticky, error) {
	var sticky model.Sticky
	var goalIDs, habitIDs, tagIDs string
	var done int
	var createdAt, updatedAt string
	err := s.Scan(
		&sticky.ID,
		&sticky.UserID,
		&sticky.Text,
		&goalIDs,
		&habitIDs,
		&tagIDs,
		&done,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan sticky: %w", err)
	}

	sticky.Done = done != 0
	if err := decodeIDs(goalIDs, &sticky.GoalIDs); err != nil {
		return nil, err
	}
	if err := decodeIDs(habitIDs, &sticky.HabitIDs); err != nil {
		return nil, err
	}
	if err := decodeIDs(tagIDs, &sticky.TagIDs); err != nil {
		return nil, err
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse sticky created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse sticky updated_at: %w", err)
	}
	sticky.CreatedAt = parsedCreatedAt
	sticky.UpdatedAt = parsedUpdatedAt

	return &sticky, nil
}

func decodeIDs(raw string, target *[]string) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("decode sticky refs: %w", err)
	}
	return nil
}

func marshalStickyRefs(sticky *model.Sticky) (string, string, string, error) {
	encode := func(ids []string) (string, error) {
		if len(ids) == 0 {
			return "[]", nil
		}
		raw, err := json.Marshal(ids)
		if err != nil {
			return "", fmt.Errorf("encode sticky refs: %w", err)
		}
		return string(raw), nil
	}
	goalIDs, err := encode(sticky.GoalIDs)
	if err != nil {
		return "", "", "", err
	}
	habitIDs, err := encode(sticky.HabitIDs)
	if err != nil {
		return "", "", "", err
	}
	tagIDs, err := encode(sticky.TagIDs)
	if err != nil {
		return "", "", "", err
	}
	return goalIDs, habitIDs, tagIDs, nil
}
