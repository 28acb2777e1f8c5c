package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

type TagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tags (id, user_id, name, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tag.ID,
		tag.UserID,
		tag.Name,
		tag.Color,
		formatTime(tag.CreatedAt),
		formatTime(tag.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Update(ctx context.Context, tag *model.Tag) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE tags SET name = ?, color = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		tag.Name,
		tag.Color,
		formatTime(tag.UpdatedAt),
		tag.ID,
		tag.UserID,
	)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return requireAffected(result, "update tag")
}

func (r *TagRepository) ListByUser(ctx context.Context, userID string) ([]model.Tag, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, name, color, created_at, updated_at
		 FROM tags WHERE user_id = ? ORDER BY name ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		tag, scanErr := scanTag(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM tags WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return requireAffected(result, "delete tag")
}

func scanTag(s scanner) (*model.Tag, error) {
	var tag model.Tag
	var createdAt, updatedAt string
	err := s.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse tag created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse tag updated_at: %w", err)
	}
	tag.CreatedAt = parsedCreatedAt
	tag.UpdatedAt = parsedUpdatedAt

	return &tag, nil
}
