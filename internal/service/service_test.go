package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/storage"
	"github.com/chorehub/chorehub/internal/storage/sqlite"
)

// setupStore creates a file-backed SQLite store in a temp directory.
func setupStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	return store
}

// seedUser creates a user directly in the store.
func seedUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()

	user := models.NewUser(username, username, username+"@example.com", "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

// seedGroup creates a group with the given creator and extra members.
func seedGroup(t *testing.T, store storage.Store, creator *models.User, members ...*models.User) *models.Group {
	t.Helper()

	ids := []string{creator.ID}
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	group := &models.Group{
		Name:      "Flat 4B",
		Status:    "active",
		Timezone:  "Europe/London",
		CreatorID: creator.ID,
		Members:   ids,
	}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

// fixedNow pins a service clock to a known date.
func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}
}

func dateUTC(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
