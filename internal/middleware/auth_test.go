package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorehub/chorehub/internal/auth"
	"github.com/chorehub/chorehub/internal/models"
)

func newToken(t *testing.T, m *auth.JWTManager) (string, *models.User) {
	t.Helper()

	user := models.NewUser("alice", "Alice", "alice@example.com", "hash")
	token, err := m.Generate(user)
	require.NoError(t, err)
	return token, user
}

func TestRequireAuth(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)
	token, user := newToken(t, m)

	var gotUserID, gotUsername string
	handler := RequireAuth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotUsername = GetUsername(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing token rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key rejected", func(t *testing.T) {
		other := auth.NewJWTManager("other-secret", time.Hour)
		forged, _ := newToken(t, other)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, user.ID, gotUserID)
		assert.Equal(t, "alice", gotUsername)
	})
}

func TestOptionalAuth(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)
	token, user := newToken(t, m)

	var gotUserID string
	handler := OptionalAuth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
	}))

	t.Run("anonymous request passes with no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, gotUserID)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, user.ID, gotUserID)
	})
}
