package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chorehub/chorehub/internal/models"
)

// CreateEvent persists a new event and its member assignments in one
// transaction.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO events (id, group_id, name, first_date, first_time, repeat_every, is_complete, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.GroupID, event.Name, formatDate(event.FirstDate),
		event.FirstTime, event.RepeatEvery, event.IsComplete, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	for _, userID := range event.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO event_members (event_id, user_id) VALUES (?, ?)",
			event.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanEvent reads one event row plus its stored date.
func scanEvent(scan func(dest ...interface{}) error) (*models.Event, error) {
	event := &models.Event{}
	var date string
	if err := scan(&event.ID, &event.GroupID, &event.Name, &date,
		&event.FirstTime, &event.RepeatEvery, &event.IsComplete, &event.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	event.FirstDate = parsed
	return event, nil
}

const eventColumns = "id, group_id, name, first_date, first_time, repeat_every, is_complete, created_at"

// GetEvent retrieves an event by ID, including member assignments.
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", eventID)

	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event not found: %s", eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	members, err := s.eventMembers(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Members = members

	return event, nil
}

// GetEventByName retrieves the earliest event matching (group, name).
// Returns (nil, nil) if no such event exists.
func (s *SQLiteStore) GetEventByName(ctx context.Context, groupID, name string) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE group_id = ? AND name = ? ORDER BY first_date LIMIT 1",
		groupID, name)

	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event by name: %w", err)
	}

	members, err := s.eventMembers(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Members = members

	return event, nil
}

// eventMembers loads an event's assigned member user IDs.
func (s *SQLiteStore) eventMembers(ctx context.Context, eventID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM event_members WHERE event_id = ? ORDER BY user_id",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan event member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event members: %w", err)
	}

	return members, nil
}

// ListEventsByGroup retrieves all events in a group, ordered by date.
func (s *SQLiteStore) ListEventsByGroup(ctx context.Context, groupID string) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE group_id = ? ORDER BY first_date, name",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	for _, event := range events {
		members, err := s.eventMembers(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		event.Members = members
	}

	return events, nil
}

// EventExists reports whether an event with the same group, name and
// date already exists.
func (s *SQLiteStore) EventExists(ctx context.Context, groupID, name string, date time.Time) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM events WHERE group_id = ? AND name = ? AND first_date = ? LIMIT 1",
		groupID, name, formatDate(date),
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}
	return true, nil
}

// SetEventMembers replaces an event's member assignments.
func (s *SQLiteStore) SetEventMembers(ctx context.Context, eventID string, userIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM event_members WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to clear event members: %w", err)
	}

	for _, userID := range userIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO event_members (event_id, user_id) VALUES (?, ?)",
			eventID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteEvent removes an event. Members and occurrences cascade.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, eventID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id = ?", eventID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("event not found: %s", eventID)
	}
	if err != nil {
		return fmt.Errorf("failed to check event existence: %w", err)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// DeleteFutureEvents removes events sharing (group, name, repeat) with
// a date strictly after the given one. Dates are stored as YYYY-MM-DD
// strings, so the string comparison matches date order.
func (s *SQLiteStore) DeleteFutureEvents(ctx context.Context, groupID, name, repeatEvery string, after time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE group_id = ? AND name = ? AND repeat_every = ? AND first_date > ?",
		groupID, name, repeatEvery, formatDate(after),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete future events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted events: %w", err)
	}
	return int(n), nil
}

// CreateOccurrence persists one event occurrence.
func (s *SQLiteStore) CreateOccurrence(ctx context.Context, occ *models.EventOccurrence) error {
	if occ.ID == "" {
		occ.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO event_occurrences (id, event_id, date, time) VALUES (?, ?, ?, ?)",
		occ.ID, occ.EventID, formatDate(occ.Date), occ.Time,
	)
	if err != nil {
		return fmt.Errorf("failed to insert occurrence: %w", err)
	}

	return nil
}

// ListOccurrencesByEvent retrieves an event's occurrences ordered by date.
func (s *SQLiteStore) ListOccurrencesByEvent(ctx context.Context, eventID string) ([]*models.EventOccurrence, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, event_id, date, time FROM event_occurrences WHERE event_id = ? ORDER BY date",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list occurrences: %w", err)
	}
	defer rows.Close()

	var occs []*models.EventOccurrence
	for rows.Next() {
		occ := &models.EventOccurrence{}
		var date string
		if err := rows.Scan(&occ.ID, &occ.EventID, &date, &occ.Time); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		parsed, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		occ.Date = parsed
		occs = append(occs, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate occurrences: %w", err)
	}

	return occs, nil
}
