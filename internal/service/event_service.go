package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chorehub/chorehub/internal/calculator"
	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/storage"
)

// EventService implements event CRUD and the recurrence engine:
// materializing future occurrences of recurring events and retracting
// them when the definition goes away.
type EventService struct {
	store storage.Store
	now   func() time.Time
}

// NewEventService creates a new EventService with the given storage backend.
func NewEventService(store storage.Store) *EventService {
	return &EventService{store: store, now: time.Now}
}

// CreateEventInput describes a new event. MemberNames are usernames
// and must all be members of the group at assignment time.
type CreateEventInput struct {
	GroupID     string
	Name        string
	Date        time.Time
	Time        string
	RepeatEvery string
	MemberNames []string
}

// resolveGroupMembers maps usernames to users, requiring each to exist
// and to be a member of the group. Fails fast on the first offender.
func (s *EventService) resolveGroupMembers(ctx context.Context, group *models.Group, usernames []string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(usernames))
	for _, username := range usernames {
		user, err := s.store.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		if !group.HasMember(user.ID) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotInGroup, username)
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateEvent validates and persists a new event, then records its
// first occurrence. The repeat interval is normalized at this boundary
// but otherwise stored as given; the engine simply skips intervals it
// does not recognize.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		slog.Warn("CreateEvent: group lookup failed", "group_id", in.GroupID, "error", err)
		return nil, ErrGroupNotFound
	}

	members, err := s.resolveGroupMembers(ctx, group, in.MemberNames)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID
	}

	event := &models.Event{
		Name:        in.Name,
		FirstDate:   calculator.DateOnly(in.Date),
		FirstTime:   in.Time,
		RepeatEvery: models.NormalizeRepeat(in.RepeatEvery),
		GroupID:     group.ID,
		Members:     memberIDs,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		slog.Error("CreateEvent failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	occ := &models.EventOccurrence{
		EventID: event.ID,
		Date:    event.FirstDate,
		Time:    event.FirstTime,
	}
	if err := s.store.CreateOccurrence(ctx, occ); err != nil {
		slog.Error("CreateEvent: failed to record first occurrence", "event_id", event.ID, "error", err)
		return nil, err
	}

	slog.Info("Event created",
		"event_id", event.ID,
		"group_id", group.ID,
		"name", event.Name,
		"repeat_every", event.RepeatEvery,
	)

	return event, nil
}

// ChangeEventMembers replaces an event's member assignments. Every new
// member must exist and be in the group; the check happens now, not
// retroactively when group membership later changes.
func (s *EventService) ChangeEventMembers(ctx context.Context, groupID, eventName string, memberNames []string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return ErrGroupNotFound
	}

	event, err := s.store.GetEventByName(ctx, groupID, eventName)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	members, err := s.resolveGroupMembers(ctx, group, memberNames)
	if err != nil {
		return err
	}
	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID
	}

	if err := s.store.SetEventMembers(ctx, event.ID, memberIDs); err != nil {
		slog.Error("ChangeEventMembers failed", "event_id", event.ID, "error", err)
		return err
	}

	slog.Info("Event members changed", "event_id", event.ID, "members", len(memberIDs))
	return nil
}

// MaterializeRecurring expands every recurring event in the group into
// concrete future events up to today + 90 days. For each step date it
// creates an event copying name, repeat interval and group, with
// completion false, unless an event with the same (group, name, date)
// already exists. Member assignments are not copied onto generated
// events.
//
// Events whose repeat interval is not recognized are skipped silently;
// a malformed interval means "not recurring", not an error. Returns
// the number of events created.
func (s *EventService) MaterializeRecurring(ctx context.Context, groupID string) (int, error) {
	events, err := s.store.ListEventsByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}

	horizon := calculator.DateOnly(s.now()).AddDate(0, 0, calculator.HorizonDays)
	created := 0

	for _, event := range events {
		repeat := models.NormalizeRepeat(event.RepeatEvery)
		if repeat == models.RepeatNone {
			continue
		}
		stepDays, ok := calculator.StepDays(repeat)
		if !ok {
			// Unrecognized interval: skip, do not error.
			continue
		}

		for _, date := range calculator.Occurrences(event.FirstDate, horizon, stepDays) {
			exists, err := s.store.EventExists(ctx, groupID, event.Name, date)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}

			future := &models.Event{
				Name:        event.Name,
				FirstDate:   date,
				FirstTime:   event.FirstTime,
				RepeatEvery: event.RepeatEvery,
				IsComplete:  false,
				GroupID:     event.GroupID,
			}
			if err := s.store.CreateEvent(ctx, future); err != nil {
				return created, fmt.Errorf("failed to materialize occurrence: %w", err)
			}
			created++
		}
	}

	if created > 0 {
		slog.Info("Recurring events materialized", "group_id", groupID, "created", created)
	}
	return created, nil
}

// RetractRecurrences removes the future events generated from this
// event's recurrence: every event in the same group sharing its name
// and repeat interval whose date is strictly after the source date.
// A non-recurring event is a no-op. Returns the number removed.
func (s *EventService) RetractRecurrences(ctx context.Context, event *models.Event) (int, error) {
	if models.NormalizeRepeat(event.RepeatEvery) == models.RepeatNone {
		return 0, nil
	}

	deleted, err := s.store.DeleteFutureEvents(ctx, event.GroupID, event.Name, event.RepeatEvery, event.FirstDate)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		slog.Info("Recurrences retracted", "group_id", event.GroupID, "name", event.Name, "deleted", deleted)
	}
	return deleted, nil
}

// DeleteEvent removes an event, retracting its future recurrences
// first so a deleted recurring definition does not leave orphaned
// generated events behind. Occurrences cascade with the event row.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if _, err := s.RetractRecurrences(ctx, event); err != nil {
		return err
	}

	if err := s.store.DeleteEvent(ctx, event.ID); err != nil {
		slog.Error("DeleteEvent failed", "event_id", event.ID, "error", err)
		return err
	}

	slog.Info("Event deleted", "event_id", event.ID, "group_id", event.GroupID)
	return nil
}

// ListGroupEvents materializes any due recurring occurrences and then
// returns the group's events. Materializing on read keeps the horizon
// rolling forward without a background scheduler.
func (s *EventService) ListGroupEvents(ctx context.Context, groupID string) ([]*models.Event, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, ErrGroupNotFound
	}

	if _, err := s.MaterializeRecurring(ctx, groupID); err != nil {
		return nil, err
	}

	return s.store.ListEventsByGroup(ctx, groupID)
}

// ListOccurrences retrieves an event's recorded occurrences.
func (s *EventService) ListOccurrences(ctx context.Context, eventID string) ([]*models.EventOccurrence, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, ErrEventNotFound
	}
	return s.store.ListOccurrencesByEvent(ctx, eventID)
}
