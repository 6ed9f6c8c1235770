package models

import (
	"strings"
	"time"
)

// Repeat intervals recognized by the recurrence engine. Input is
// normalized with NormalizeRepeat before comparison; anything outside
// this set is carried through untouched and skipped at generation time.
const (
	RepeatNone    = ""
	RepeatDaily   = "daily"
	RepeatWeekly  = "weekly"
	RepeatMonthly = "monthly"
)

// NormalizeRepeat lowercases a repeat interval so "Weekly" and "weekly"
// compare equal. It does not reject unknown values; the engine treats
// those as non-recurring.
func NormalizeRepeat(repeat string) string {
	s := strings.ToLower(strings.TrimSpace(repeat))
	if s == "none" {
		return RepeatNone
	}
	return s
}

// Event represents a scheduled activity belonging to a group.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// Name is the display name of the event (e.g., "Take out bins").
	Name string

	// FirstDate is the calendar date of the first occurrence.
	// Only the date part is meaningful.
	FirstDate time.Time

	// FirstTime is the optional time of day ("15:04" format, may be empty).
	FirstTime string

	// RepeatEvery is the repeat interval (RepeatNone for one-off events).
	RepeatEvery string

	// IsComplete marks the event as done.
	IsComplete bool

	// GroupID is the group this event belongs to.
	GroupID string

	// Members is the list of assigned member user IDs. Each must be a
	// group member at assignment time; later membership changes do not
	// retroactively invalidate the assignment.
	Members []string

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64
}

// IsRecurring reports whether the event has a repeat interval set.
// A malformed interval still counts as recurring here; the engine
// decides whether it can actually generate occurrences for it.
func (e *Event) IsRecurring() bool {
	return e.RepeatEvery != RepeatNone
}

// EventOccurrence represents one concrete instance of an event.
// Occurrences never outlive their parent event (cascade delete).
type EventOccurrence struct {
	// ID is the unique identifier for the occurrence (UUID format).
	ID string

	// EventID is the parent event.
	EventID string

	// Date is the calendar date of this occurrence.
	Date time.Time

	// Time is the optional time of day ("15:04" format, may be empty).
	Time string
}
