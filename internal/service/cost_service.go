package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chorehub/chorehub/internal/calculator"
	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/storage"
)

// CostService implements the cost splitting operations: equal splits,
// share-based event costs, recurring generation and settlement.
type CostService struct {
	store storage.Store
	now   func() time.Time
}

// NewCostService creates a new CostService with the given storage backend.
func NewCostService(store storage.Store) *CostService {
	return &CostService{store: store, now: time.Now}
}

// SplitCostInput is one equal-split request. Payer and Borrowers are
// usernames; borrower order is preserved and duplicates are not
// deduplicated (each appearance produces a separate share).
type SplitCostInput struct {
	GroupID   string
	Name      string
	Category  string
	Date      time.Time
	Time      string
	Amount    decimal.Decimal
	Payer     string
	Borrowers []string
}

// SplitResult reports the rows created by one split operation.
type SplitResult struct {
	TransactionID string
	Costs         []*models.Cost
}

// validateParticipants runs the shared validation cascade: group
// exists, payer resolves and is a member, every borrower (in input
// order) resolves and is a member. Returns the group, the payer and
// the resolved borrowers in input order.
func (s *CostService) validateParticipants(ctx context.Context, groupID, payer string, borrowers []string) (*models.Group, *models.User, []*models.User, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("cost validation: group lookup failed", "group_id", groupID, "error", err)
		return nil, nil, nil, ErrGroupNotFound
	}

	payerUser, err := s.store.GetUserByUsername(ctx, payer)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to look up payer: %w", err)
	}
	if payerUser == nil {
		return nil, nil, nil, ErrPayerNotFound
	}
	if !group.HasMember(payerUser.ID) {
		return nil, nil, nil, ErrPayerNotInGroup
	}

	borrowerUsers := make([]*models.User, 0, len(borrowers))
	for _, username := range borrowers {
		user, err := s.store.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to look up borrower: %w", err)
		}
		if user == nil {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrBorrowerNotFound, username)
		}
		if !group.HasMember(user.ID) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrBorrowerNotInGroup, username)
		}
		borrowerUsers = append(borrowerUsers, user)
	}

	return group, payerUser, borrowerUsers, nil
}

// SplitCost divides one expense evenly across the borrowers and
// persists one Cost row per borrower, all sharing a fresh transaction
// ID. Validation is fail-fast in a fixed order; nothing is written
// unless every check passes, and the rows commit atomically.
//
// Every borrower gets the identical round-half-up share, so the sum of
// shares can drift from the total by up to n*0.005. That drift is
// accepted, not corrected.
func (s *CostService) SplitCost(ctx context.Context, in SplitCostInput) (*SplitResult, error) {
	if in.GroupID == "" {
		return nil, ErrNoGroupProvided
	}
	if in.Amount.IsZero() {
		return nil, ErrNoAmountProvided
	}
	if len(in.Borrowers) == 0 {
		return nil, ErrNoBorrowersProvided
	}
	if in.Payer == "" {
		return nil, ErrNoPayerProvided
	}

	group, payer, borrowers, err := s.validateParticipants(ctx, in.GroupID, in.Payer, in.Borrowers)
	if err != nil {
		return nil, err
	}

	share, err := calculator.EqualShare(in.Amount, len(borrowers))
	if err != nil {
		return nil, err
	}

	transactionID := uuid.New().String()
	costs := make([]*models.Cost, 0, len(borrowers))
	for _, borrower := range borrowers {
		costs = append(costs, &models.Cost{
			TransactionID: transactionID,
			Name:          in.Name,
			Category:      in.Category,
			Date:          calculator.DateOnly(in.Date),
			Time:          in.Time,
			Amount:        share,
			GroupID:       group.ID,
			PayerID:       payer.ID,
			BorrowerID:    borrower.ID,
		})
	}

	if err := s.store.CreateCosts(ctx, costs); err != nil {
		slog.Error("SplitCost failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	slog.Info("Cost split",
		"group_id", group.ID,
		"transaction_id", transactionID,
		"payer", payer.Username,
		"borrowers", len(costs),
		"share", share.String(),
	)

	return &SplitResult{TransactionID: transactionID, Costs: costs}, nil
}

// Share is one caller-supplied borrower portion for an event cost.
type Share struct {
	Username string
	Amount   decimal.Decimal
}

// EventCostInput is a share-based cost attached to an event.
type EventCostInput struct {
	GroupID  string
	EventID  string
	Name     string
	Category string
	Date     time.Time
	Time     string
	Amount   decimal.Decimal
	Payer    string
	Shares   []Share
}

// AddEventCost persists an event-attached cost whose shares are
// supplied explicitly instead of computed by even division. The same
// validation cascade applies, plus a check that the shares sum back to
// the declared total within the 0.01 tolerance.
func (s *CostService) AddEventCost(ctx context.Context, in EventCostInput) (*SplitResult, error) {
	if in.GroupID == "" {
		return nil, ErrNoGroupProvided
	}
	if in.Amount.IsZero() {
		return nil, ErrNoAmountProvided
	}
	if len(in.Shares) == 0 {
		return nil, ErrNoBorrowersProvided
	}
	if in.Payer == "" {
		return nil, ErrNoPayerProvided
	}

	usernames := make([]string, len(in.Shares))
	for i, share := range in.Shares {
		usernames[i] = share.Username
	}

	group, payer, borrowers, err := s.validateParticipants(ctx, in.GroupID, in.Payer, usernames)
	if err != nil {
		return nil, err
	}

	if in.EventID != "" {
		if _, err := s.store.GetEvent(ctx, in.EventID); err != nil {
			return nil, ErrEventNotFound
		}
	}

	amounts := make([]decimal.Decimal, len(in.Shares))
	for i, share := range in.Shares {
		amounts[i] = share.Amount
	}
	if !calculator.SharesMatchTotal(amounts, in.Amount) {
		return nil, ErrShareSumMismatch
	}

	transactionID := uuid.New().String()
	costs := make([]*models.Cost, 0, len(in.Shares))
	for i, share := range in.Shares {
		costs = append(costs, &models.Cost{
			TransactionID: transactionID,
			Name:          in.Name,
			Category:      in.Category,
			Date:          calculator.DateOnly(in.Date),
			Time:          in.Time,
			Amount:        share.Amount,
			GroupID:       group.ID,
			PayerID:       payer.ID,
			BorrowerID:    borrowers[i].ID,
			EventID:       in.EventID,
		})
	}

	if err := s.store.CreateCosts(ctx, costs); err != nil {
		slog.Error("AddEventCost failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	slog.Info("Event cost added",
		"group_id", group.ID,
		"event_id", in.EventID,
		"transaction_id", transactionID,
		"shares", len(costs),
	)

	return &SplitResult{TransactionID: transactionID, Costs: costs}, nil
}

// RecurringCostInput creates a recurring cost template.
type RecurringCostInput struct {
	GroupID   string
	Name      string
	Category  string
	Amount    decimal.Decimal
	StartDate time.Time
	EndDate   time.Time // zero time means open-ended
	Frequency string
	Payer     string
	Borrowers []string
}

// CreateRecurringCost validates and persists a recurring cost template.
// The frequency must be a recognized interval; templates with unknown
// frequencies would poison every later generation run.
func (s *CostService) CreateRecurringCost(ctx context.Context, in RecurringCostInput) (*models.RecurringCost, error) {
	if in.GroupID == "" {
		return nil, ErrNoGroupProvided
	}
	if in.Amount.IsZero() {
		return nil, ErrNoAmountProvided
	}
	if len(in.Borrowers) == 0 {
		return nil, ErrNoBorrowersProvided
	}
	if in.Payer == "" {
		return nil, ErrNoPayerProvided
	}

	frequency := models.NormalizeRepeat(in.Frequency)
	if _, ok := calculator.StepDays(frequency); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, in.Frequency)
	}

	group, payer, borrowers, err := s.validateParticipants(ctx, in.GroupID, in.Payer, in.Borrowers)
	if err != nil {
		return nil, err
	}

	borrowerIDs := make([]string, len(borrowers))
	for i, b := range borrowers {
		borrowerIDs[i] = b.ID
	}

	rc := &models.RecurringCost{
		Name:      in.Name,
		Category:  in.Category,
		Amount:    in.Amount,
		StartDate: calculator.DateOnly(in.StartDate),
		EndDate:   in.EndDate,
		Frequency: frequency,
		GroupID:   group.ID,
		PayerID:   payer.ID,
		Borrowers: borrowerIDs,
	}
	if !in.EndDate.IsZero() {
		rc.EndDate = calculator.DateOnly(in.EndDate)
	}

	if err := s.store.CreateRecurringCost(ctx, rc); err != nil {
		slog.Error("CreateRecurringCost failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	slog.Info("Recurring cost created", "group_id", group.ID, "recurring_cost_id", rc.ID, "frequency", frequency)
	return rc, nil
}

// GenerateRecurringCosts expands a template into Cost rows: one batch
// per occurrence date from the start date through the end date (or
// today when open-ended), each batch under a fresh transaction ID with
// one row per borrower.
//
// Shares in this path are plain division at full precision, not the
// 2-place rounding of the equal-split path. An unknown frequency is a
// hard error that aborts the whole run; by then the template should
// never hold one, but stored data is not trusted.
func (s *CostService) GenerateRecurringCosts(ctx context.Context, recurringCostID string) ([]*SplitResult, error) {
	rc, err := s.store.GetRecurringCost(ctx, recurringCostID)
	if err != nil {
		return nil, err
	}
	if len(rc.Borrowers) == 0 {
		return nil, ErrNoBorrowersProvided
	}

	stepDays, ok := calculator.StepDays(models.NormalizeRepeat(rc.Frequency))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, rc.Frequency)
	}

	end := rc.EndDate
	if end.IsZero() {
		end = calculator.DateOnly(s.now())
	}

	share, err := calculator.ExactShare(rc.Amount, len(rc.Borrowers))
	if err != nil {
		return nil, err
	}

	var results []*SplitResult
	for _, date := range calculator.OccurrencesFrom(rc.StartDate, end, stepDays) {
		transactionID := uuid.New().String()
		costs := make([]*models.Cost, 0, len(rc.Borrowers))
		for _, borrowerID := range rc.Borrowers {
			costs = append(costs, &models.Cost{
				TransactionID: transactionID,
				Name:          rc.Name,
				Category:      rc.Category,
				Date:          date,
				Amount:        share,
				GroupID:       rc.GroupID,
				PayerID:       rc.PayerID,
				BorrowerID:    borrowerID,
			})
		}

		if err := s.store.CreateCosts(ctx, costs); err != nil {
			slog.Error("GenerateRecurringCosts batch failed",
				"recurring_cost_id", rc.ID, "date", date.Format("2006-01-02"), "error", err)
			return results, err
		}
		results = append(results, &SplitResult{TransactionID: transactionID, Costs: costs})
	}

	slog.Info("Recurring costs generated",
		"recurring_cost_id", rc.ID,
		"batches", len(results),
		"borrowers", len(rc.Borrowers),
	)

	return results, nil
}

// SettleCost toggles one cost row's settled flag. Only the payer or
// the borrower of the row may toggle it; the actor is the
// authenticated user, passed explicitly.
func (s *CostService) SettleCost(ctx context.Context, actorID, costID string, settled bool) (*models.Cost, error) {
	cost, err := s.store.GetCost(ctx, costID)
	if err != nil {
		return nil, err
	}

	if actorID != cost.PayerID && actorID != cost.BorrowerID {
		return nil, ErrNotCostParticipant
	}

	var settledAt int64
	if settled {
		settledAt = s.now().Unix()
	}
	if err := s.store.SetCostSettled(ctx, costID, settled, settledAt); err != nil {
		return nil, err
	}

	cost.Settled = settled
	cost.SettledAt = settledAt

	slog.Info("Cost settlement toggled", "cost_id", costID, "settled", settled, "actor_id", actorID)
	return cost, nil
}

// ListGroupCosts retrieves every cost row in a group, newest first.
func (s *CostService) ListGroupCosts(ctx context.Context, groupID string) ([]*models.Cost, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, ErrGroupNotFound
	}
	return s.store.ListCostsByGroup(ctx, groupID)
}
