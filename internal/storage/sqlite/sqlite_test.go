package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorehub/chorehub/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	return store
}

func testUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := models.NewUser(username, username, username+"@example.com", "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func testGroup(t *testing.T, store *SQLiteStore, creator *models.User) *models.Group {
	t.Helper()

	group := &models.Group{
		Name:      "Flat 4B",
		CreatorID: creator.ID,
		Members:   []string{creator.ID},
	}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := testUser(t, store, "alice")

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.Username, byID.Username)
	assert.Equal(t, user.Email, byID.Email)

	t.Run("username lookup is case-insensitive", func(t *testing.T) {
		found, err := store.GetUserByUsername(ctx, "ALICE")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("absent users return nil without error", func(t *testing.T) {
		found, err := store.GetUserByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = store.GetUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update username", func(t *testing.T) {
		require.NoError(t, store.UpdateUsername(ctx, user.ID, "alice2"))

		found, err := store.GetUserByUsername(ctx, "alice2")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.GreaterOrEqual(t, found.UpdatedAt, user.UpdatedAt)
	})
}

func TestGroupMembership(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	bob := testUser(t, store, "bob")
	group := testGroup(t, store, alice)

	require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{bob.ID}))

	t.Run("re-adding an existing member is harmless", func(t *testing.T) {
		require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{bob.ID}))

		stored, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Members, 2)
	})

	t.Run("list groups by member", func(t *testing.T) {
		groups, err := store.ListGroupsByMember(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, group.ID, groups[0].ID)
	})

	t.Run("remove member", func(t *testing.T) {
		require.NoError(t, store.RemoveGroupMember(ctx, group.ID, bob.ID))

		groups, err := store.ListGroupsByMember(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, groups)
	})
}

func TestEventStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	group := testGroup(t, store, alice)

	event := &models.Event{
		Name:        "Take out bins",
		FirstDate:   day(7),
		FirstTime:   "19:00",
		RepeatEvery: models.RepeatWeekly,
		GroupID:     group.ID,
		Members:     []string{alice.ID},
	}
	require.NoError(t, store.CreateEvent(ctx, event))
	require.NotEmpty(t, event.ID)

	t.Run("round trip", func(t *testing.T) {
		stored, err := store.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, event.Name, stored.Name)
		assert.True(t, stored.FirstDate.Equal(day(7)))
		assert.Equal(t, "19:00", stored.FirstTime)
		assert.Equal(t, []string{alice.ID}, stored.Members)
	})

	t.Run("lookup by name", func(t *testing.T) {
		stored, err := store.GetEventByName(ctx, group.ID, "Take out bins")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, event.ID, stored.ID)

		missing, err := store.GetEventByName(ctx, group.ID, "No such event")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("existence check by group name and date", func(t *testing.T) {
		exists, err := store.EventExists(ctx, group.ID, "Take out bins", day(7))
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.EventExists(ctx, group.ID, "Take out bins", day(8))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("occurrences cascade with the event", func(t *testing.T) {
		occ := &models.EventOccurrence{EventID: event.ID, Date: day(7), Time: "19:00"}
		require.NoError(t, store.CreateOccurrence(ctx, occ))

		occs, err := store.ListOccurrencesByEvent(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, occs, 1)

		require.NoError(t, store.DeleteEvent(ctx, event.ID))

		occs, err = store.ListOccurrencesByEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Empty(t, occs)
	})
}

func TestDeleteFutureEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	group := testGroup(t, store, alice)

	for _, d := range []int{1, 8, 15, 22} {
		require.NoError(t, store.CreateEvent(ctx, &models.Event{
			Name:        "Bins",
			FirstDate:   day(d),
			RepeatEvery: models.RepeatWeekly,
			GroupID:     group.ID,
		}))
	}
	// Same name, different repeat interval: must survive the sweep.
	require.NoError(t, store.CreateEvent(ctx, &models.Event{
		Name:      "Bins",
		FirstDate: day(22),
		GroupID:   group.ID,
	}))

	deleted, err := store.DeleteFutureEvents(ctx, group.ID, "Bins", models.RepeatWeekly, day(8))
	require.NoError(t, err)
	assert.Equal(t, 2, deleted, "only dates strictly after the cutoff go")

	events, err := store.ListEventsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestCostStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	bob := testUser(t, store, "bob")
	group := testGroup(t, store, alice)

	amount := decimal.RequireFromString("33.33")
	txID := uuid.New().String()
	costs := []*models.Cost{
		{
			TransactionID: txID,
			Name:          "Groceries",
			Date:          day(1),
			Amount:        amount,
			GroupID:       group.ID,
			PayerID:       alice.ID,
			BorrowerID:    bob.ID,
		},
		{
			TransactionID: txID,
			Name:          "Groceries",
			Date:          day(1),
			Amount:        amount,
			GroupID:       group.ID,
			PayerID:       alice.ID,
			BorrowerID:    alice.ID,
		},
	}
	require.NoError(t, store.CreateCosts(ctx, costs))

	t.Run("amount survives the round trip exactly", func(t *testing.T) {
		stored, err := store.GetCost(ctx, costs[0].ID)
		require.NoError(t, err)
		assert.True(t, stored.Amount.Equal(amount), "amount = %s, want %s", stored.Amount, amount)
		assert.True(t, stored.Date.Equal(day(1)))
		assert.Empty(t, stored.EventID)
	})

	t.Run("list by transaction", func(t *testing.T) {
		stored, err := store.ListCostsByTransaction(ctx, txID)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})

	t.Run("settle flag round trip", func(t *testing.T) {
		settledAt := time.Now().Unix()
		require.NoError(t, store.SetCostSettled(ctx, costs[0].ID, true, settledAt))

		stored, err := store.GetCost(ctx, costs[0].ID)
		require.NoError(t, err)
		assert.True(t, stored.Settled)
		assert.Equal(t, settledAt, stored.SettledAt)
	})

	t.Run("settling an unknown cost errors", func(t *testing.T) {
		err := store.SetCostSettled(ctx, "no-such-cost", true, 0)
		assert.Error(t, err)
	})
}

func TestCreateCosts_Atomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	group := testGroup(t, store, alice)

	id := uuid.New().String()
	amount := decimal.RequireFromString("10.00")
	batch := []*models.Cost{
		{ID: id, TransactionID: "tx", Name: "A", Date: day(1), Amount: amount, GroupID: group.ID, PayerID: alice.ID, BorrowerID: alice.ID},
		{ID: id, TransactionID: "tx", Name: "B", Date: day(1), Amount: amount, GroupID: group.ID, PayerID: alice.ID, BorrowerID: alice.ID},
	}

	err := store.CreateCosts(ctx, batch)
	require.Error(t, err, "duplicate IDs in one batch must fail")

	stored, err := store.ListCostsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "a failed batch must leave no rows behind")
}

func TestEventCostLink(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	group := testGroup(t, store, alice)

	event := &models.Event{Name: "Dinner", FirstDate: day(5), GroupID: group.ID}
	require.NoError(t, store.CreateEvent(ctx, event))

	cost := &models.Cost{
		TransactionID: uuid.New().String(),
		Name:          "Wine",
		Date:          day(5),
		Amount:        decimal.RequireFromString("12.50"),
		GroupID:       group.ID,
		PayerID:       alice.ID,
		BorrowerID:    alice.ID,
		EventID:       event.ID,
	}
	require.NoError(t, store.CreateCosts(ctx, []*models.Cost{cost}))

	// Deleting the event detaches its costs instead of deleting them.
	require.NoError(t, store.DeleteEvent(ctx, event.ID))

	stored, err := store.GetCost(ctx, cost.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.EventID)
}

func TestRecurringCostStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	bob := testUser(t, store, "bob")
	group := testGroup(t, store, alice)

	rc := &models.RecurringCost{
		Name:      "Internet",
		Amount:    decimal.RequireFromString("40.00"),
		StartDate: day(1),
		Frequency: models.RepeatMonthly,
		GroupID:   group.ID,
		PayerID:   alice.ID,
		Borrowers: []string{alice.ID, bob.ID},
	}
	require.NoError(t, store.CreateRecurringCost(ctx, rc))
	require.NotEmpty(t, rc.ID)

	stored, err := store.GetRecurringCost(ctx, rc.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(rc.Amount))
	assert.True(t, stored.EndDate.IsZero(), "open-ended template reads back with zero end date")
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, stored.Borrowers)

	list, err := store.ListRecurringCostsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteGroupCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := testUser(t, store, "alice")
	group := testGroup(t, store, alice)

	event := &models.Event{Name: "Bins", FirstDate: day(7), GroupID: group.ID}
	require.NoError(t, store.CreateEvent(ctx, event))

	require.NoError(t, store.CreateCosts(ctx, []*models.Cost{{
		TransactionID: uuid.New().String(),
		Name:          "Groceries",
		Date:          day(1),
		Amount:        decimal.RequireFromString("5.00"),
		GroupID:       group.ID,
		PayerID:       alice.ID,
		BorrowerID:    alice.ID,
	}}))

	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	_, err := store.GetGroup(ctx, group.ID)
	assert.Error(t, err)

	events, err := store.ListEventsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	costs, err := store.ListCostsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, costs)
}
