// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/chorehub/chorehub/internal/models"
)

// Store defines the interface for ChoreHub storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. ID and timestamps must already be
	// set (models.NewUser does this).
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns (nil, nil) if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByUsername retrieves a user by username, case-insensitively.
	// Returns (nil, nil) if absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateUsername changes a user's username and bumps UpdatedAt.
	UpdateUsername(ctx context.Context, userID, username string) error

	// CreateGroup persists a new group with its member list.
	// The group.ID field will be populated by the store if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members. Returns an error if
	// the group is not found.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddGroupMembers adds user IDs to a group's member set.
	// Already-present members are skipped.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// RemoveGroupMember removes one user from a group's member set.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// DeleteGroup removes a group and cascades to its events and costs.
	DeleteGroup(ctx context.Context, groupID string) error

	// ListGroupsByMember retrieves every group the user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// CreateEvent persists a new event with its member assignments.
	// The event.ID field will be populated by the store if empty.
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEvent retrieves an event by ID. Returns an error if not found.
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// GetEventByName retrieves an event by (group, name).
	// Returns (nil, nil) if absent.
	GetEventByName(ctx context.Context, groupID, name string) (*models.Event, error)

	// ListEventsByGroup retrieves all events in a group ordered by date.
	ListEventsByGroup(ctx context.Context, groupID string) ([]*models.Event, error)

	// EventExists reports whether an event with this (group, name, date)
	// already exists. Used for duplicate-occurrence prevention.
	EventExists(ctx context.Context, groupID, name string, date time.Time) (bool, error)

	// SetEventMembers replaces an event's member assignments.
	SetEventMembers(ctx context.Context, eventID string, userIDs []string) error

	// DeleteEvent removes an event and cascades to its occurrences.
	DeleteEvent(ctx context.Context, eventID string) error

	// DeleteFutureEvents removes every event in the group sharing name
	// and repeat interval whose date is strictly after the given date.
	// Returns the number of rows removed.
	DeleteFutureEvents(ctx context.Context, groupID, name, repeatEvery string, after time.Time) (int, error)

	// CreateOccurrence persists one event occurrence.
	CreateOccurrence(ctx context.Context, occ *models.EventOccurrence) error

	// ListOccurrencesByEvent retrieves an event's occurrences by date.
	ListOccurrencesByEvent(ctx context.Context, eventID string) ([]*models.EventOccurrence, error)

	// CreateCosts persists a batch of cost rows atomically: either the
	// whole batch commits or none of it does.
	CreateCosts(ctx context.Context, costs []*models.Cost) error

	// GetCost retrieves a cost row by ID. Returns an error if not found.
	GetCost(ctx context.Context, costID string) (*models.Cost, error)

	// ListCostsByGroup retrieves all cost rows in a group, newest first.
	ListCostsByGroup(ctx context.Context, groupID string) ([]*models.Cost, error)

	// ListCostsByTransaction retrieves the rows of one split operation.
	ListCostsByTransaction(ctx context.Context, transactionID string) ([]*models.Cost, error)

	// SetCostSettled toggles a cost row's settled flag and timestamp.
	SetCostSettled(ctx context.Context, costID string, settled bool, settledAt int64) error

	// CreateRecurringCost persists a recurring cost template.
	CreateRecurringCost(ctx context.Context, rc *models.RecurringCost) error

	// GetRecurringCost retrieves a template by ID. Errors if not found.
	GetRecurringCost(ctx context.Context, id string) (*models.RecurringCost, error)

	// ListRecurringCostsByGroup retrieves a group's templates.
	ListRecurringCostsByGroup(ctx context.Context, groupID string) ([]*models.RecurringCost, error)

	// Close releases any resources held by the store.
	Close() error
}
