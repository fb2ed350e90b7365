package models

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/traineeline/internal/constants"
)

// Task is one entry of a timeline. Tasks run contiguously in Order.
type Task struct {
	ID           string                `json:"id" yaml:"id"`
	Name         string                `json:"name" yaml:"name"`
	Order        int                   `json:"order" yaml:"order"`
	DurationDays float64               `json:"duration_days" yaml:"duration_days"`
	PresentType  constants.PresentType `json:"present_type,omitempty" yaml:"present_type,omitempty"`
	TaskType     constants.TaskType    `json:"task_type,omitempty" yaml:"task_type,omitempty"`
}

// ScheduledTask is a Task placed on the calendar.
type ScheduledTask struct {
	Task          `yaml:",inline"`
	Start         time.Time `json:"start" yaml:"start"`
	End           time.Time `json:"end" yaml:"end"`
	EndsAfternoon bool      `json:"ends_afternoon" yaml:"ends_afternoon"`
}

// IsValidDuration reports whether d is a positive multiple of half a day.
func IsValidDuration(d float64) bool {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return false
	}
	return math.Mod(d*2, 1) == 0
}

// IsHalfDayFraction reports whether the fractional part of d is exactly 0.5
func IsHalfDayFraction(d float64) bool {
	return d-math.Floor(d) == 0.5
}

func (t *Task) Validate() error {
	if !IsValidDuration(t.DurationDays) {
		return fmt.Errorf("invalid duration %v (must be a positive multiple of 0.5 days)", t.DurationDays)
	}

	switch t.PresentType {
	case "", constants.PresentRemote, constants.PresentInPerson:
	default:
		return fmt.Errorf("invalid present type: %s", t.PresentType)
	}

	switch t.TaskType {
	case "", constants.TaskTypeLearning, constants.TaskTypeAssessment, constants.TaskTypeProject:
	default:
		return fmt.Errorf("invalid task type: %s", t.TaskType)
	}

	return nil
}

// Label returns the task name, falling back to its order
func (t Task) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("task #%d", t.Order)
}
