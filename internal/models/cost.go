package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cost represents one payer-to-borrower monetary obligation.
//
// A cost split among N borrowers is stored as N rows sharing one
// TransactionID; Amount is the borrower's share, not the original total.
type Cost struct {
	// ID is the unique identifier for the cost row (UUID format).
	ID string

	// TransactionID groups all rows produced by one split operation.
	TransactionID string

	// Name is the display name of the expense (e.g., "Groceries").
	Name string

	// Category is an optional free-form label.
	Category string

	// Date is the calendar date of the expense.
	Date time.Time

	// Time is the optional time of day ("15:04" format, may be empty).
	Time string

	// Amount is this borrower's share.
	Amount decimal.Decimal

	// Settled marks this share as paid back to the payer.
	Settled bool

	// SettledAt is the Unix timestamp when Settled last flipped to true.
	// Zero while unsettled.
	SettledAt int64

	// GroupID is the group this cost belongs to.
	GroupID string

	// PayerID is the user who paid the full amount up front.
	PayerID string

	// BorrowerID is the user who owes this share.
	BorrowerID string

	// EventID optionally links the cost to an event (empty otherwise).
	EventID string

	// CreatedAt is the Unix timestamp when the row was created.
	CreatedAt int64
}

// RecurringCost is a template that generates batches of Cost rows, one
// batch per occurrence date. Each batch gets a fresh transaction ID and
// splits Amount across the borrowers.
type RecurringCost struct {
	// ID is the unique identifier for the template (UUID format).
	ID string

	// Name is the display name copied onto generated costs.
	Name string

	// Category is an optional free-form label copied onto generated costs.
	Category string

	// Amount is the total per occurrence, divided among Borrowers.
	Amount decimal.Decimal

	// StartDate is the first occurrence date.
	StartDate time.Time

	// EndDate is the last occurrence date, inclusive. Zero time means
	// open-ended: generation runs up to today.
	EndDate time.Time

	// Frequency is one of RepeatDaily, RepeatWeekly, RepeatMonthly.
	// Unlike event repeats, an unknown frequency here is a hard error.
	Frequency string

	// GroupID is the group this template belongs to.
	GroupID string

	// PayerID is the user who pays each occurrence.
	PayerID string

	// Borrowers is the list of borrower user IDs.
	Borrowers []string

	// CreatedAt is the Unix timestamp when the template was created.
	CreatedAt int64
}
