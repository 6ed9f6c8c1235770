package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chorehub/chorehub/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, name, email, password_hash, photo_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.PhotoURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// getUser runs a single-row user query for the given predicate.
func (s *SQLiteStore) getUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, username, name, email, password_hash, photo_url, created_at, updated_at
		FROM users
		WHERE ` + where

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.PhotoURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id = ?", id)
}

// GetUserByUsername retrieves a user by username. The username column
// is COLLATE NOCASE, so the match is case-insensitive.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username = ?", username)
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email = ?", email)
}

// UpdateUsername changes a user's username and bumps UpdatedAt.
func (s *SQLiteStore) UpdateUsername(ctx context.Context, userID, username string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, updated_at = ? WHERE id = ?",
		username, time.Now().Unix(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check username update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
