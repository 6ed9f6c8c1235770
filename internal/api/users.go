package api

import (
	"net/http"

	"github.com/chorehub/chorehub/internal/middleware"
	"github.com/chorehub/chorehub/internal/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
	}
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, token, err := h.auths.Register(r.Context(), req.Username, req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(user), Token: token})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, token, err := h.auths.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(user), Token: token})
}

type changeUsernameRequest struct {
	Username string `json:"username"`
}

func (h *Handler) changeUsername(w http.ResponseWriter, r *http.Request) {
	var req changeUsernameRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, err := h.auths.ChangeUsername(r.Context(), middleware.GetUserID(r.Context()), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type currentUserGroup struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Members []string        `json:"members"`
	Events  []eventResponse `json:"events"`
}

type currentUserResponse struct {
	User   userResponse       `json:"user"`
	Groups []currentUserGroup `json:"groups"`
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	view, err := h.auths.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := currentUserResponse{User: toUserResponse(view.User), Groups: []currentUserGroup{}}
	for _, ge := range view.Groups {
		group := currentUserGroup{
			ID:      ge.Group.ID,
			Name:    ge.Group.Name,
			Members: ge.Group.Members,
			Events:  make([]eventResponse, 0, len(ge.Events)),
		}
		for _, event := range ge.Events {
			group.Events = append(group.Events, toEventResponse(event))
		}
		resp.Groups = append(resp.Groups, group)
	}

	writeJSON(w, http.StatusOK, resp)
}
