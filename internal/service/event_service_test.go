package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorehub/chorehub/internal/models"
)

func TestCreateEvent(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	outsider := seedUser(t, store, "mallory")
	group := seedGroup(t, store, alice, bob)

	t.Run("unknown group", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, CreateEventInput{GroupID: "no-such-group", Name: "Bins"})
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("member outside group rejected", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, CreateEventInput{
			GroupID:     group.ID,
			Name:        "Bins",
			Date:        dateUTC(2026, time.September, 7),
			MemberNames: []string{outsider.Username},
		})
		assert.ErrorIs(t, err, ErrUserNotInGroup)
	})

	t.Run("unknown member rejected", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, CreateEventInput{
			GroupID:     group.ID,
			Name:        "Bins",
			Date:        dateUTC(2026, time.September, 7),
			MemberNames: []string{"ghost"},
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("creates event and first occurrence", func(t *testing.T) {
		event, err := svc.CreateEvent(ctx, CreateEventInput{
			GroupID:     group.ID,
			Name:        "Take out bins",
			Date:        dateUTC(2026, time.September, 7),
			Time:        "19:00",
			RepeatEvery: "Weekly",
			MemberNames: []string{alice.Username, bob.Username},
		})
		require.NoError(t, err)

		assert.Equal(t, models.RepeatWeekly, event.RepeatEvery, "repeat interval is normalized")
		assert.Equal(t, []string{alice.ID, bob.ID}, event.Members)
		assert.True(t, event.IsRecurring())

		occs, err := svc.ListOccurrences(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, occs, 1)
		assert.True(t, occs[0].Date.Equal(event.FirstDate))
		assert.Equal(t, "19:00", occs[0].Time)
	})
}

func TestChangeEventMembers(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	group := seedGroup(t, store, alice, bob)

	event, err := svc.CreateEvent(ctx, CreateEventInput{
		GroupID:     group.ID,
		Name:        "Dishes",
		Date:        dateUTC(2026, time.September, 2),
		MemberNames: []string{alice.Username},
	})
	require.NoError(t, err)

	t.Run("unknown event", func(t *testing.T) {
		err := svc.ChangeEventMembers(ctx, group.ID, "no-such-event", []string{bob.Username})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("replaces assignments", func(t *testing.T) {
		require.NoError(t, svc.ChangeEventMembers(ctx, group.ID, "Dishes", []string{bob.Username}))

		stored, err := store.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{bob.ID}, stored.Members)
	})
}

func TestMaterializeRecurring(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	svc.now = fixedNow(2026, time.September, 1)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	_, err := svc.CreateEvent(ctx, CreateEventInput{
		GroupID:     group.ID,
		Name:        "Take out bins",
		Date:        dateUTC(2026, time.September, 1),
		RepeatEvery: "weekly",
		MemberNames: []string{alice.Username},
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, group.ID)
	require.NoError(t, err)

	// Weekly steps inside the 90 day horizon: +7 through +84.
	assert.Equal(t, 12, created)

	events, err := store.ListEventsByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, events, 13)

	for _, event := range events {
		assert.Equal(t, "Take out bins", event.Name)
		assert.Equal(t, models.RepeatWeekly, event.RepeatEvery)
		assert.False(t, event.IsComplete)
		if !event.FirstDate.Equal(dateUTC(2026, time.September, 1)) {
			assert.Empty(t, event.Members, "generated events carry no member assignments")
		}
	}

	t.Run("idempotent", func(t *testing.T) {
		created, err := svc.MaterializeRecurring(ctx, group.ID)
		require.NoError(t, err)
		assert.Zero(t, created)
	})

	t.Run("horizon rolls forward with the clock", func(t *testing.T) {
		svc.now = fixedNow(2026, time.September, 8)
		created, err := svc.MaterializeRecurring(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, created)
	})
}

func TestMaterializeRecurring_SkipsUnrecognizedInterval(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	svc.now = fixedNow(2026, time.September, 1)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	_, err := svc.CreateEvent(ctx, CreateEventInput{
		GroupID:     group.ID,
		Name:        "Deep clean",
		Date:        dateUTC(2026, time.September, 1),
		RepeatEvery: "fortnightly",
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, group.ID)
	require.NoError(t, err, "an unrecognized interval is skipped, not an error")
	assert.Zero(t, created)
}

func TestRetractRecurrences(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	svc.now = fixedNow(2026, time.September, 1)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	source, err := svc.CreateEvent(ctx, CreateEventInput{
		GroupID:     group.ID,
		Name:        "Take out bins",
		Date:        dateUTC(2026, time.September, 1),
		RepeatEvery: "weekly",
	})
	require.NoError(t, err)

	_, err = svc.MaterializeRecurring(ctx, group.ID)
	require.NoError(t, err)

	t.Run("non-recurring event is a no-op", func(t *testing.T) {
		oneOff, err := svc.CreateEvent(ctx, CreateEventInput{
			GroupID: group.ID,
			Name:    "Take out bins",
			Date:    dateUTC(2026, time.August, 1),
		})
		require.NoError(t, err)

		deleted, err := svc.RetractRecurrences(ctx, oneOff)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("removes only strictly later dates", func(t *testing.T) {
		deleted, err := svc.RetractRecurrences(ctx, source)
		require.NoError(t, err)
		assert.Equal(t, 12, deleted)

		events, err := store.ListEventsByGroup(ctx, group.ID)
		require.NoError(t, err)

		var names []time.Time
		for _, e := range events {
			if e.RepeatEvery == models.RepeatWeekly {
				names = append(names, e.FirstDate)
			}
		}
		require.Len(t, names, 1, "the source event itself survives")
		assert.True(t, names[0].Equal(source.FirstDate))
	})
}

func TestDeleteEvent_RetractsRecurrences(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	svc.now = fixedNow(2026, time.September, 1)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	event, err := svc.CreateEvent(ctx, CreateEventInput{
		GroupID:     group.ID,
		Name:        "Water plants",
		Date:        dateUTC(2026, time.September, 1),
		RepeatEvery: "daily",
	})
	require.NoError(t, err)

	created, err := svc.MaterializeRecurring(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, created)

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))

	events, err := store.ListEventsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, events, "deleting the definition removes its generated future events too")
}

func TestListGroupEvents_MaterializesOnRead(t *testing.T) {
	store := setupStore(t)
	svc := NewEventService(store)
	svc.now = fixedNow(2026, time.September, 1)
	ctx := context.Background()

	alice := seedUser(t, store, "alice")
	group := seedGroup(t, store, alice)

	_, err := svc.CreateEvent(ctx, CreateEventInput{
		GroupID:     group.ID,
		Name:        "Hoover",
		Date:        dateUTC(2026, time.September, 1),
		RepeatEvery: "monthly",
	})
	require.NoError(t, err)

	events, err := svc.ListGroupEvents(ctx, group.ID)
	require.NoError(t, err)

	// Monthly steps at +30, +60 and +90 within the horizon.
	assert.Len(t, events, 4)
}
