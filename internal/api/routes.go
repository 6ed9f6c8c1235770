package api

import (
	"net/http"

	"github.com/chorehub/chorehub/internal/middleware"
)

// Routes builds the HTTP mux. Register and login are public; every
// other endpoint requires a bearer token.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", middleware.OptionalAuth(h.jwt)(http.HandlerFunc(h.index)))
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("POST /login", h.login)

	authed := middleware.RequireAuth(h.jwt)
	protect := func(handler http.HandlerFunc) http.Handler {
		return authed(handler)
	}

	mux.Handle("GET /get-current-user", protect(h.currentUser))
	mux.Handle("POST /user/change_username", protect(h.changeUsername))

	mux.Handle("POST /group/create", protect(h.createGroup))
	mux.Handle("GET /group/view", protect(h.viewGroup))
	mux.Handle("POST /group/add_users", protect(h.addGroupMembers))
	mux.Handle("POST /group/leave", protect(h.leaveGroup))
	mux.Handle("POST /group/delete", protect(h.deleteGroup))

	mux.Handle("POST /event/create", protect(h.createEvent))
	mux.Handle("GET /event/list", protect(h.listGroupEvents))
	mux.Handle("GET /event/view", protect(h.viewEvent))
	mux.Handle("POST /event/change_members", protect(h.changeEventMembers))
	mux.Handle("POST /event/delete", protect(h.deleteEvent))

	mux.Handle("POST /cost/create", protect(h.createCost))
	mux.Handle("POST /cost/event_create", protect(h.createEventCost))
	mux.Handle("POST /cost/settle", protect(h.settleCost))
	mux.Handle("GET /cost/list", protect(h.listGroupCosts))

	mux.Handle("POST /recurring_cost/create", protect(h.createRecurringCost))
	mux.Handle("POST /recurring_cost/generate", protect(h.generateRecurringCosts))

	return mux
}
