package calculator

import (
	"time"

	"github.com/chorehub/chorehub/internal/models"
)

// HorizonDays bounds how far ahead recurring events are materialized.
const HorizonDays = 90

// StepDays maps a normalized repeat interval to its step size in days.
// Monthly is a fixed 30-day approximation, not calendar-month
// arithmetic. ok is false for empty or unrecognized intervals.
func StepDays(repeat string) (days int, ok bool) {
	switch repeat {
	case models.RepeatDaily:
		return 1, true
	case models.RepeatWeekly:
		return 7, true
	case models.RepeatMonthly:
		return 30, true
	default:
		return 0, false
	}
}

// Occurrences walks forward from start in stepDays increments and
// returns every date up to and including end. The start date itself is
// not included: it is the already-existing first occurrence.
func Occurrences(start, end time.Time, stepDays int) []time.Time {
	var dates []time.Time
	for cur := start.AddDate(0, 0, stepDays); !cur.After(end); cur = cur.AddDate(0, 0, stepDays) {
		dates = append(dates, cur)
	}
	return dates
}

// OccurrencesFrom is like Occurrences but includes the start date
// itself. Recurring cost generation bills the first occurrence too.
func OccurrencesFrom(start, end time.Time, stepDays int) []time.Time {
	var dates []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, stepDays) {
		dates = append(dates, cur)
	}
	return dates
}

// DateOnly truncates a time to midnight UTC so calendar dates compare
// and store consistently.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
