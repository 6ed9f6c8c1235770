package api

import (
	"net/http"

	"github.com/chorehub/chorehub/internal/middleware"
	"github.com/chorehub/chorehub/internal/service"
)

type createGroupRequest struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Expiration int64  `json:"expiration,omitempty"`
	Timezone   string `json:"timezone"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), service.CreateGroupInput{
		Name:       req.Name,
		Status:     req.Status,
		Expiration: req.Expiration,
		Timezone:   req.Timezone,
		CreatorID:  middleware.GetUserID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      group.ID,
		"name":    group.Name,
		"members": group.Members,
	})
}

func (h *Handler) viewGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		writeError(w, service.ErrNoGroupProvided)
		return
	}

	detail, err := h.groups.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	members := make([]userResponse, 0, len(detail.Members))
	for _, m := range detail.Members {
		members = append(members, toUserResponse(m))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"group": map[string]interface{}{
			"id":         detail.Group.ID,
			"name":       detail.Group.Name,
			"status":     detail.Group.Status,
			"expiration": detail.Group.Expiration,
			"timezone":   detail.Group.Timezone,
			"creator":    detail.Creator.Username,
			"members":    members,
		},
	})
}

type addMembersRequest struct {
	GroupID   string   `json:"group_id"`
	Usernames []string `json:"usernames"`
}

func (h *Handler) addGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(req.Usernames) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no usernames provided"})
		return
	}

	result, err := h.groups.AddMembers(r.Context(), req.GroupID, req.Usernames)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if len(result.Success) == 0 && len(result.NotFound) > 0 {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]interface{}{
		"results": map[string][]string{
			"success":   result.Success,
			"not_found": result.NotFound,
		},
	})
}

type groupIDRequest struct {
	GroupID string `json:"group_id"`
}

func (h *Handler) leaveGroup(w http.ResponseWriter, r *http.Request) {
	var req groupIDRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.groups.LeaveGroup(r.Context(), req.GroupID, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "left group"})
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	var req groupIDRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.groups.DeleteGroup(r.Context(), req.GroupID, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
}
