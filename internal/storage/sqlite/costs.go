package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chorehub/chorehub/internal/models"
)

const costColumns = "id, transaction_id, name, category, date, time, amount, settled, settled_at, group_id, payer_id, borrower_id, event_id, created_at"

// CreateCosts persists a batch of cost rows in one transaction: either
// the whole batch commits or none of it does.
func (s *SQLiteStore) CreateCosts(ctx context.Context, costs []*models.Cost) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, cost := range costs {
		if cost.ID == "" {
			cost.ID = uuid.New().String()
		}
		if cost.CreatedAt == 0 {
			cost.CreatedAt = now
		}

		var eventID interface{}
		if cost.EventID != "" {
			eventID = cost.EventID
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO costs (`+costColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cost.ID, cost.TransactionID, cost.Name, cost.Category,
			formatDate(cost.Date), cost.Time, cost.Amount.String(),
			cost.Settled, cost.SettledAt, cost.GroupID, cost.PayerID,
			cost.BorrowerID, eventID, cost.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cost: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanCost reads one cost row, restoring the decimal amount and date.
func scanCost(scan func(dest ...interface{}) error) (*models.Cost, error) {
	cost := &models.Cost{}
	var date, amount string
	var eventID sql.NullString
	if err := scan(&cost.ID, &cost.TransactionID, &cost.Name, &cost.Category,
		&date, &cost.Time, &amount, &cost.Settled, &cost.SettledAt,
		&cost.GroupID, &cost.PayerID, &cost.BorrowerID, &eventID, &cost.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	cost.Date = parsed

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	cost.Amount = amt

	if eventID.Valid {
		cost.EventID = eventID.String
	}

	return cost, nil
}

// GetCost retrieves a cost row by ID.
func (s *SQLiteStore) GetCost(ctx context.Context, costID string) (*models.Cost, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+costColumns+" FROM costs WHERE id = ?", costID)

	cost, err := scanCost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cost not found: %s", costID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cost: %w", err)
	}

	return cost, nil
}

// listCosts runs a multi-row cost query.
func (s *SQLiteStore) listCosts(ctx context.Context, where, order string, arg interface{}) ([]*models.Cost, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+costColumns+" FROM costs WHERE "+where+" ORDER BY "+order, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list costs: %w", err)
	}
	defer rows.Close()

	var costs []*models.Cost
	for rows.Next() {
		cost, err := scanCost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost: %w", err)
		}
		costs = append(costs, cost)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate costs: %w", err)
	}

	return costs, nil
}

// ListCostsByGroup retrieves all cost rows in a group, newest first.
func (s *SQLiteStore) ListCostsByGroup(ctx context.Context, groupID string) ([]*models.Cost, error) {
	return s.listCosts(ctx, "group_id = ?", "created_at DESC, id", groupID)
}

// ListCostsByTransaction retrieves the rows of one split operation.
func (s *SQLiteStore) ListCostsByTransaction(ctx context.Context, transactionID string) ([]*models.Cost, error) {
	return s.listCosts(ctx, "transaction_id = ?", "borrower_id", transactionID)
}

// SetCostSettled toggles a cost row's settled flag.
func (s *SQLiteStore) SetCostSettled(ctx context.Context, costID string, settled bool, settledAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE costs SET settled = ?, settled_at = ? WHERE id = ?",
		settled, settledAt, costID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cost: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check cost update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("cost not found: %s", costID)
	}
	return nil
}

// CreateRecurringCost persists a recurring cost template and its
// borrower list in one transaction.
func (s *SQLiteStore) CreateRecurringCost(ctx context.Context, rc *models.RecurringCost) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	if rc.CreatedAt == 0 {
		rc.CreatedAt = time.Now().Unix()
	}

	endDate := ""
	if !rc.EndDate.IsZero() {
		endDate = formatDate(rc.EndDate)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO recurring_costs (id, name, category, amount, start_date, end_date, frequency, group_id, payer_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rc.ID, rc.Name, rc.Category, rc.Amount.String(), formatDate(rc.StartDate),
		endDate, rc.Frequency, rc.GroupID, rc.PayerID, rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recurring cost: %w", err)
	}

	for _, userID := range rc.Borrowers {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO recurring_cost_borrowers (recurring_cost_id, user_id) VALUES (?, ?)",
			rc.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert recurring cost borrower: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanRecurringCost reads one template row.
func scanRecurringCost(scan func(dest ...interface{}) error) (*models.RecurringCost, error) {
	rc := &models.RecurringCost{}
	var amount, startDate, endDate string
	if err := scan(&rc.ID, &rc.Name, &rc.Category, &amount, &startDate,
		&endDate, &rc.Frequency, &rc.GroupID, &rc.PayerID, &rc.CreatedAt); err != nil {
		return nil, err
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	rc.Amount = amt

	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	rc.StartDate = start

	if endDate != "" {
		end, err := parseDate(endDate)
		if err != nil {
			return nil, err
		}
		rc.EndDate = end
	}

	return rc, nil
}

const recurringCostColumns = "id, name, category, amount, start_date, end_date, frequency, group_id, payer_id, created_at"

// GetRecurringCost retrieves a template by ID with its borrower list.
func (s *SQLiteStore) GetRecurringCost(ctx context.Context, id string) (*models.RecurringCost, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recurringCostColumns+" FROM recurring_costs WHERE id = ?", id)

	rc, err := scanRecurringCost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recurring cost not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring cost: %w", err)
	}

	borrowers, err := s.recurringCostBorrowers(ctx, rc.ID)
	if err != nil {
		return nil, err
	}
	rc.Borrowers = borrowers

	return rc, nil
}

// recurringCostBorrowers loads a template's borrower user IDs.
func (s *SQLiteStore) recurringCostBorrowers(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM recurring_cost_borrowers WHERE recurring_cost_id = ? ORDER BY user_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring cost borrowers: %w", err)
	}
	defer rows.Close()

	var borrowers []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan borrower: %w", err)
		}
		borrowers = append(borrowers, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate borrowers: %w", err)
	}

	return borrowers, nil
}

// ListRecurringCostsByGroup retrieves a group's templates.
func (s *SQLiteStore) ListRecurringCostsByGroup(ctx context.Context, groupID string) ([]*models.RecurringCost, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recurringCostColumns+" FROM recurring_costs WHERE group_id = ? ORDER BY created_at",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring costs: %w", err)
	}
	defer rows.Close()

	var rcs []*models.RecurringCost
	for rows.Next() {
		rc, err := scanRecurringCost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring cost: %w", err)
		}
		rcs = append(rcs, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring costs: %w", err)
	}

	for _, rc := range rcs {
		borrowers, err := s.recurringCostBorrowers(ctx, rc.ID)
		if err != nil {
			return nil, err
		}
		rc.Borrowers = borrowers
	}

	return rcs, nil
}
