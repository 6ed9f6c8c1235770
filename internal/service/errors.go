package service

import "errors"

// Validation and invariant errors surfaced by the services. Handlers
// match these with errors.Is to pick status codes; the borrower and
// member errors are wrapped with the offending username.
var (
	// Cost splitter validation, in cascade order.
	ErrNoGroupProvided     = errors.New("no group provided")
	ErrNoAmountProvided    = errors.New("no amount provided")
	ErrNoBorrowersProvided = errors.New("no borrowers provided")
	ErrNoPayerProvided     = errors.New("no payer provided")
	ErrGroupNotFound       = errors.New("group not found")
	ErrPayerNotFound       = errors.New("payer not found")
	ErrPayerNotInGroup     = errors.New("payer not in group")
	ErrBorrowerNotFound    = errors.New("borrower not found")
	ErrBorrowerNotInGroup  = errors.New("borrower not in group")

	// Share-based cost creation.
	ErrShareSumMismatch = errors.New("shares do not sum to the total amount")

	// Recurring cost generation. Unlike a malformed event repeat
	// interval (which is silently skipped), this one is fatal.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// Events and membership.
	ErrEventNotFound  = errors.New("event not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrUserNotInGroup = errors.New("user not in group")

	// Account changes.
	ErrNoUsernameProvided = errors.New("no username provided")

	// Groups and settlement.
	ErrCreatorCannotLeave = errors.New("group creator cannot leave the group")
	ErrNotGroupCreator    = errors.New("only the group creator may do this")
	ErrNotCostParticipant = errors.New("only the payer or borrower may settle a cost")
)
