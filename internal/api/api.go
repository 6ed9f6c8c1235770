// Package api exposes the services over a JSON REST interface.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chorehub/chorehub/internal/auth"
	"github.com/chorehub/chorehub/internal/middleware"
	"github.com/chorehub/chorehub/internal/service"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	auths  *service.AuthService
	groups *service.GroupService
	events *service.EventService
	costs  *service.CostService
	jwt    *auth.JWTManager
}

// NewHandler creates the API handler over the given services.
func NewHandler(auths *service.AuthService, groups *service.GroupService, events *service.EventService, costs *service.CostService, jwt *auth.JWTManager) *Handler {
	return &Handler{auths: auths, groups: groups, events: events, costs: costs, jwt: jwt}
}

// writeJSON renders a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError renders a JSON error body with a status derived from the
// service error taxonomy.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

// readJSON decodes a request body into v.
func readJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON in request: %w", err)
	}
	return nil
}

// parseDate parses a wire-format calendar date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// statusForError maps service errors to HTTP statuses: validation and
// invariant violations are 400, missing referents 404, authentication
// failures 401, refused operations 403, everything else 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPayerNotFound),
		errors.Is(err, service.ErrBorrowerNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrCreatorCannotLeave),
		errors.Is(err, service.ErrNotGroupCreator),
		errors.Is(err, service.ErrNotCostParticipant):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNoGroupProvided),
		errors.Is(err, service.ErrNoAmountProvided),
		errors.Is(err, service.ErrNoBorrowersProvided),
		errors.Is(err, service.ErrNoPayerProvided),
		errors.Is(err, service.ErrNoUsernameProvided),
		errors.Is(err, service.ErrPayerNotInGroup),
		errors.Is(err, service.ErrBorrowerNotInGroup),
		errors.Is(err, service.ErrUserNotInGroup),
		errors.Is(err, service.ErrShareSumMismatch),
		errors.Is(err, service.ErrInvalidFrequency),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrUsernameExists),
		errors.Is(err, auth.ErrEmailExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// index is a trivial liveness endpoint, personalized when the caller
// sends a valid token.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	message := "Welcome to ChoreHub"
	if username := middleware.GetUsername(r.Context()); username != "" {
		message = fmt.Sprintf("Welcome back, %s", username)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}
