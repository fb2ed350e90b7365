package models

import "time"

// StatusCode describes what a trainee can do with an assessment task right now
type StatusCode string

const (
	StatusTestCreate           StatusCode = "TEST_CREATE"
	StatusTestEdit             StatusCode = "TEST_EDIT"
	StatusTestCompleted        StatusCode = "TEST_COMPLETED"
	StatusRetestCreate         StatusCode = "RETEST_CREATE"
	StatusRetestEdit           StatusCode = "RETEST_EDIT"
	StatusInfiniteTestCreate   StatusCode = "INFINITE_TEST_CREATE"
	StatusInfiniteTestEdit     StatusCode = "INFINITE_TEST_EDIT"
	StatusInfiniteRetestCreate StatusCode = "INFINITE_RETEST_CREATE"
	StatusInfiniteRetestEdit   StatusCode = "INFINITE_RETEST_EDIT"
)

// AllStatusCodes lists every status in a stable order
var AllStatusCodes = []StatusCode{
	StatusTestCreate,
	StatusTestEdit,
	StatusTestCompleted,
	StatusRetestCreate,
	StatusRetestEdit,
	StatusInfiniteTestCreate,
	StatusInfiniteTestEdit,
	StatusInfiniteRetestCreate,
	StatusInfiniteRetestEdit,
}

// Affordance returns the action offered to the grader for this status
func (s StatusCode) Affordance() string {
	switch s {
	case StatusTestCreate:
		return "record test score"
	case StatusTestEdit:
		return "edit test score"
	case StatusTestCompleted:
		return "read-only: assessment completed"
	case StatusRetestCreate:
		return "record retest score"
	case StatusRetestEdit:
		return "edit retest score"
	case StatusInfiniteTestCreate:
		return "record test score (extension)"
	case StatusInfiniteTestEdit:
		return "edit test score (extension)"
	case StatusInfiniteRetestCreate:
		return "record retest score (extension)"
	case StatusInfiniteRetestEdit:
		return "edit retest score (extension)"
	default:
		return "unknown"
	}
}

// Attempt is one recorded attempt of a trainee at an assessment task
type Attempt struct {
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
	IsRetry       bool      `json:"is_retry" yaml:"is_retry"`
	PresentStatus bool      `json:"present_status" yaml:"present_status"`
	IsRetryNeeded bool      `json:"is_retry_needed" yaml:"is_retry_needed"`
}

// History is the attempt record of one trainee for one task.
// Attempts are ordered oldest first. Placeholder is the pre-created
// absent row used before any real attempt exists.
type History struct {
	Attempts    []Attempt `json:"attempts" yaml:"attempts"`
	Placeholder *Attempt  `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	RetryNeeded bool      `json:"retry_needed" yaml:"retry_needed"`
}

// Last returns the most recent attempt
func (h History) Last() (Attempt, bool) {
	if len(h.Attempts) == 0 {
		return Attempt{}, false
	}
	return h.Attempts[len(h.Attempts)-1], true
}

// NoEndDate marks a window without a fixed end (week extensions).
var NoEndDate = time.Time{}

// Window bounds the current week of a task. Both ends are inclusive.
type Window struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NewWindow builds a window spanning whole days: from the first instant of
// startDate to the last instant of endDate. Pass NoEndDate for an open window.
func NewWindow(startDate, endDate time.Time) Window {
	w := Window{
		Start: time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location()),
	}
	if !endDate.IsZero() {
		w.End = time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), endDate.Location())
	}
	return w
}

// IsOpenEnded reports whether the window has no end date
func (w Window) IsOpenEnded() bool {
	return w.End.IsZero()
}

// Contains reports whether t falls inside the window, bounds included.
// An open-ended window contains every instant from Start on.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	return w.IsOpenEnded() || !t.After(w.End)
}
