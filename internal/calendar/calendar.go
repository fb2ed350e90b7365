// Package calendar decides which dates are working days.
//
// A date is a leave day when it is a holiday, a Sunday, or a Saturday falling
// in the first seven days of its month (the first Saturday of the month).
// Every other Saturday is a working day.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/models"
)

// ErrUnboundedSkip is returned when no working day is found within the
// allowed number of consecutive leave days.
var ErrUnboundedSkip = errors.New("no working day within lookahead bound")

// Calendar is an immutable set of holiday dates.
type Calendar struct {
	holidays map[string]struct{}
}

// New builds a calendar from holiday dates. Only the civil date of each
// value is used.
func New(holidays ...time.Time) Calendar {
	c := Calendar{holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		c.holidays[h.Format(constants.DateFormat)] = struct{}{}
	}
	return c
}

// FromHolidays builds a calendar from stored holidays, skipping soft-deleted ones.
func FromHolidays(holidays []models.Holiday) (Calendar, error) {
	c := Calendar{holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		if h.DeletedAt != nil {
			continue
		}
		if err := h.Validate(); err != nil {
			return Calendar{}, fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		c.holidays[h.Date] = struct{}{}
	}
	return c, nil
}

// Len returns the number of holidays in the calendar
func (c Calendar) Len() int {
	return len(c.holidays)
}

// IsHoliday reports whether t's date is a holiday
func (c Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format(constants.DateFormat)]
	return ok
}

// IsLeaveDay reports whether t's date is a non-working day
func (c Calendar) IsLeaveDay(t time.Time) bool {
	if c.IsHoliday(t) {
		return true
	}
	switch t.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		return t.Day() <= 7
	}
	return false
}

// NextWorkingDay returns t if it falls on a working day, otherwise the same
// time of day on the next working day. More than maxSkip consecutive leave
// days returns ErrUnboundedSkip.
func (c Calendar) NextWorkingDay(t time.Time, maxSkip int) (time.Time, error) {
	for skipped := 0; c.IsLeaveDay(t); skipped++ {
		if skipped >= maxSkip {
			return time.Time{}, fmt.Errorf("%w: %d leave days from %s", ErrUnboundedSkip, skipped, t.Format(constants.DateFormat))
		}
		t = AddDays(t, 1)
	}
	return t, nil
}

// WorkingDaysBetween counts working days from from to to, both inclusive.
func (c Calendar) WorkingDaysBetween(from, to time.Time) int {
	count := 0
	for d := DateOf(from); !d.After(DateOf(to)); d = AddDays(d, 1) {
		if !c.IsLeaveDay(d) {
			count++
		}
	}
	return count
}

// AddDays moves t by n calendar days keeping its wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// At returns t's date at the given clock time.
func At(t time.Time, clock time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), clock.Hour(), clock.Minute(), 0, 0, t.Location())
}
