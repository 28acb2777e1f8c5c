package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/laximgqozaZZZYT/vow-sub001/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	var email interface{}
	if user.Email != "" {
		email = user.Email
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, email, password_hash, is_guest, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		email,
		user.PasswordHash,
		boolToInt(user.IsGuest),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, is_guest, created_at, updated_at
		 FROM users
		 WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash, is_guest, created_at, updated_at
		 FROM users
		 WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

// PromoteGuestTx turns a guest account into a registered one in place, so the
// guest's habits, activities and goals stay attached to the same user id.
func (r *UserRepository) PromoteGuestTx(ctx context.Context, tx *sql.Tx, id, email, passwordHash string, now time.Time) error {
	result, err := tx.ExecContext(
		ctx,
		`UPDATE users
		 SET email = ?, password_hash = ?, is_guest = 0, updated_at = ?
		 WHERE id = ? AND is_guest = 1`,
		email,
		passwordHash,
		formatTime(now),
		id,
	)
	if err != nil {
		return fmt.Errorf("promote guest: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("promote guest rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	var email sql.NullString
	var isGuest int
	var createdAt string
	var updatedAt string
	if err := s.Scan(&user.ID, &email, &user.PasswordHash, &isGuest, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	user.Email = email.String
	user.IsGuest = isGuest != 0

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse user created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse user updated_at: %w", err)
	}
	user.CreatedAt = parsedCreatedAt
	user.UpdatedAt = parsedUpdatedAt

	return &user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
