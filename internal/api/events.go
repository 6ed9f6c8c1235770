package api

import (
	"net/http"

	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/service"
)

type eventResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FirstDate   string   `json:"first_date"`
	FirstTime   string   `json:"first_time,omitempty"`
	RepeatEvery string   `json:"repeat_every,omitempty"`
	IsComplete  bool     `json:"is_complete"`
	GroupID     string   `json:"group_id"`
	Members     []string `json:"members"`
}

func toEventResponse(e *models.Event) eventResponse {
	members := e.Members
	if members == nil {
		members = []string{}
	}
	return eventResponse{
		ID:          e.ID,
		Name:        e.Name,
		FirstDate:   e.FirstDate.Format(dateLayout),
		FirstTime:   e.FirstTime,
		RepeatEvery: e.RepeatEvery,
		IsComplete:  e.IsComplete,
		GroupID:     e.GroupID,
		Members:     members,
	}
}

type createEventRequest struct {
	GroupID     string   `json:"group_id"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Time        string   `json:"time,omitempty"`
	RepeatEvery string   `json:"repeat_every,omitempty"`
	MemberNames []string `json:"member_names,omitempty"`
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	event, err := h.events.CreateEvent(r.Context(), service.CreateEventInput{
		GroupID:     req.GroupID,
		Name:        req.Name,
		Date:        date,
		Time:        req.Time,
		RepeatEvery: req.RepeatEvery,
		MemberNames: req.MemberNames,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

type changeEventMembersRequest struct {
	GroupID     string   `json:"group_id"`
	Name        string   `json:"name"`
	MemberNames []string `json:"member_names"`
}

func (h *Handler) changeEventMembers(w http.ResponseWriter, r *http.Request) {
	var req changeEventMembersRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.events.ChangeEventMembers(r.Context(), req.GroupID, req.Name, req.MemberNames); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "event members updated"})
}

func (h *Handler) listGroupEvents(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		writeError(w, service.ErrNoGroupProvided)
		return
	}

	events, err := h.events.ListGroupEvents(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, toEventResponse(event))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": resp})
}

func (h *Handler) viewEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		writeError(w, service.ErrEventNotFound)
		return
	}

	occs, err := h.events.ListOccurrences(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	type occResponse struct {
		ID   string `json:"id"`
		Date string `json:"date"`
		Time string `json:"time,omitempty"`
	}
	resp := make([]occResponse, 0, len(occs))
	for _, occ := range occs {
		resp = append(resp, occResponse{ID: occ.ID, Date: occ.Date.Format(dateLayout), Time: occ.Time})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"occurrences": resp})
}

type eventIDRequest struct {
	EventID string `json:"event_id"`
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	var req eventIDRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.events.DeleteEvent(r.Context(), req.EventID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}
