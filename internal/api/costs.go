package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chorehub/chorehub/internal/middleware"
	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/service"
)

type costResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Date          string `json:"date"`
	Time          string `json:"time,omitempty"`
	Amount        string `json:"amount"`
	Settled       bool   `json:"settled"`
	SettledAt     int64  `json:"settled_at,omitempty"`
	GroupID       string `json:"group_id"`
	PayerID       string `json:"payer_id"`
	BorrowerID    string `json:"borrower_id"`
	EventID       string `json:"event_id,omitempty"`
}

func toCostResponse(c *models.Cost) costResponse {
	return costResponse{
		ID:            c.ID,
		TransactionID: c.TransactionID,
		Name:          c.Name,
		Category:      c.Category,
		Date:          c.Date.Format(dateLayout),
		Time:          c.Time,
		Amount:        c.Amount.StringFixed(2),
		Settled:       c.Settled,
		SettledAt:     c.SettledAt,
		GroupID:       c.GroupID,
		PayerID:       c.PayerID,
		BorrowerID:    c.BorrowerID,
		EventID:       c.EventID,
	}
}

func toSplitResponse(res *service.SplitResult) map[string]interface{} {
	costs := make([]costResponse, 0, len(res.Costs))
	for _, c := range res.Costs {
		costs = append(costs, toCostResponse(c))
	}
	return map[string]interface{}{
		"transaction_id": res.TransactionID,
		"costs":          costs,
	}
}

type createCostRequest struct {
	GroupID   string          `json:"group_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Date      string          `json:"date,omitempty"`
	Time      string          `json:"time,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Payer     string          `json:"payer"`
	Borrowers []string        `json:"borrowers"`
}

func (h *Handler) createCost(w http.ResponseWriter, r *http.Request) {
	var req createCostRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		date = parsed
	}

	result, err := h.costs.SplitCost(r.Context(), service.SplitCostInput{
		GroupID:   req.GroupID,
		Name:      req.Name,
		Category:  req.Category,
		Date:      date,
		Time:      req.Time,
		Amount:    req.Amount,
		Payer:     req.Payer,
		Borrowers: req.Borrowers,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSplitResponse(result))
}

type shareRequest struct {
	Username string          `json:"username"`
	Amount   decimal.Decimal `json:"amount"`
}

type createEventCostRequest struct {
	GroupID  string          `json:"group_id"`
	EventID  string          `json:"event_id,omitempty"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Date     string          `json:"date,omitempty"`
	Time     string          `json:"time,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Payer    string          `json:"payer"`
	Shares   []shareRequest  `json:"shares"`
}

func (h *Handler) createEventCost(w http.ResponseWriter, r *http.Request) {
	var req createEventCostRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		date = parsed
	}

	shares := make([]service.Share, len(req.Shares))
	for i, s := range req.Shares {
		shares[i] = service.Share{Username: s.Username, Amount: s.Amount}
	}

	result, err := h.costs.AddEventCost(r.Context(), service.EventCostInput{
		GroupID:  req.GroupID,
		EventID:  req.EventID,
		Name:     req.Name,
		Category: req.Category,
		Date:     date,
		Time:     req.Time,
		Amount:   req.Amount,
		Payer:    req.Payer,
		Shares:   shares,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSplitResponse(result))
}

type settleCostRequest struct {
	CostID  string `json:"cost_id"`
	Settled bool   `json:"settled"`
}

func (h *Handler) settleCost(w http.ResponseWriter, r *http.Request) {
	var req settleCostRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cost, err := h.costs.SettleCost(r.Context(), middleware.GetUserID(r.Context()), req.CostID, req.Settled)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCostResponse(cost))
}

func (h *Handler) listGroupCosts(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		writeError(w, service.ErrNoGroupProvided)
		return
	}

	costs, err := h.costs.ListGroupCosts(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]costResponse, 0, len(costs))
	for _, c := range costs {
		resp = append(resp, toCostResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"costs": resp})
}

type createRecurringCostRequest struct {
	GroupID   string          `json:"group_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date,omitempty"`
	Frequency string          `json:"frequency"`
	Payer     string          `json:"payer"`
	Borrowers []string        `json:"borrowers"`
}

func (h *Handler) createRecurringCost(w http.ResponseWriter, r *http.Request) {
	var req createRecurringCostRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var end time.Time
	if req.EndDate != "" {
		end, err = parseDate(req.EndDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	rc, err := h.costs.CreateRecurringCost(r.Context(), service.RecurringCostInput{
		GroupID:   req.GroupID,
		Name:      req.Name,
		Category:  req.Category,
		Amount:    req.Amount,
		StartDate: start,
		EndDate:   end,
		Frequency: req.Frequency,
		Payer:     req.Payer,
		Borrowers: req.Borrowers,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": rc.ID})
}

type generateRecurringRequest struct {
	RecurringCostID string `json:"recurring_cost_id"`
}

func (h *Handler) generateRecurringCosts(w http.ResponseWriter, r *http.Request) {
	var req generateRecurringRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	results, err := h.costs.GenerateRecurringCosts(r.Context(), req.RecurringCostID)
	if err != nil {
		writeError(w, err)
		return
	}

	batches := make([]map[string]interface{}, 0, len(results))
	for _, res := range results {
		batches = append(batches, toSplitResponse(res))
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"batches": batches})
}
