package scheduler

import (
	"errors"
	"fmt"

	"github.com/julianstephens/traineeline/internal/calendar"
)

var (
	// ErrInvalidDuration is returned for durations that are not positive multiples of 0.5 days
	ErrInvalidDuration = errors.New("invalid task duration")
	// ErrEmptyTimeline is returned when a timeline has no tasks
	ErrEmptyTimeline = errors.New("timeline has no tasks")
	// ErrTaskNotFound is returned when an edit refers to an order that does not exist
	ErrTaskNotFound = errors.New("task not found in timeline")
	// ErrUnboundedSkip is returned when a task cannot reach a working day
	ErrUnboundedSkip = calendar.ErrUnboundedSkip
)

// SchedulingError reports which task could not be placed
type SchedulingError struct {
	Order  int
	TaskID string
	Err    error
}

func (e *SchedulingError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("scheduling task %d (%s): %v", e.Order, e.TaskID, e.Err)
	}
	return fmt.Sprintf("scheduling task %d: %v", e.Order, e.Err)
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}
