package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique login handle. Lookups are case-insensitive.
	Username string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to clients.
	PasswordHash string

	// PhotoURL is an optional profile picture reference.
	PhotoURL string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(username, name, email, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
