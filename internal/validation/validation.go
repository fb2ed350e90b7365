// Package validation checks timelines before they are scheduled and reports
// every problem at once.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/traineeline/internal/calendar"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyTimeline      ConflictType = "empty_timeline"
	ConflictInvalidDuration    ConflictType = "invalid_duration"
	ConflictDuplicateTaskID    ConflictType = "duplicate_task_id"
	ConflictDuplicateOrder     ConflictType = "duplicate_order"
	ConflictOrderGap           ConflictType = "order_gap"
	ConflictInvalidPresentType ConflictType = "invalid_present_type"
	ConflictInvalidTaskType    ConflictType = "invalid_task_type"
	ConflictStartOnLeaveDay    ConflictType = "start_on_leave_day"
	ConflictEndBeforeStart     ConflictType = "end_before_start"
	ConflictOverlappingTasks   ConflictType = "overlapping_tasks"
)

// Severity separates problems that block scheduling from informational ones
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in a timeline
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Orders      []int    // Task orders involved (if applicable)
	TaskIDs     []string // IDs of tasks involved (if applicable)
	// Fixable conflicts disappear after renumbering
	Fixable bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict blocks scheduling
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError && !c.Fixable {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		suffix := ""
		if conflict.Fixable {
			suffix = " (fixed by renumbering)"
		}
		fmt.Fprintf(&b, "- [%s] %s%s\n", conflict.Severity, conflict.Description, suffix)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	if c.Severity == "" {
		c.Severity = SeverityError
	}
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator validates timelines for conflicts
type Validator struct {
	maxSkip     int
	maxDuration float64
}

func New() *Validator {
	return &Validator{
		maxSkip:     constants.DefaultMaxLeaveSkip,
		maxDuration: constants.DefaultMaxDurationDays,
	}
}

// WithMaxLeaveSkip sets how many consecutive leave days the start-date check
// looks past.
func (v *Validator) WithMaxLeaveSkip(n int) *Validator {
	if n > 0 {
		v.maxSkip = n
	}
	return v
}

// WithMaxDurationDays sets the longest accepted task duration.
func (v *Validator) WithMaxDurationDays(d float64) *Validator {
	if d > 0 {
		v.maxDuration = d
	}
	return v
}

// ValidateTasks checks task fields and ordering
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if len(tasks) == 0 {
		result.add(Conflict{
			Type:        ConflictEmptyTimeline,
			Description: "Timeline has no tasks",
		})
		return result
	}

	idOrders := make(map[string][]int)
	orderIDs := make(map[int][]string)
	for _, task := range tasks {
		if !models.IsValidDuration(task.DurationDays) {
			result.add(Conflict{
				Type:        ConflictInvalidDuration,
				Description: fmt.Sprintf("Task \"%s\" has invalid duration %v (must be a positive multiple of 0.5 days)", task.Label(), task.DurationDays),
				Orders:      []int{task.Order},
				TaskIDs:     idsOf(task),
			})
		} else if task.DurationDays > v.maxDuration {
			result.add(Conflict{
				Type:        ConflictInvalidDuration,
				Description: fmt.Sprintf("Task \"%s\" has duration %v, above the %v day limit", task.Label(), task.DurationDays, v.maxDuration),
				Orders:      []int{task.Order},
				TaskIDs:     idsOf(task),
			})
		}

		switch task.PresentType {
		case "", constants.PresentRemote, constants.PresentInPerson:
		default:
			result.add(Conflict{
				Type:        ConflictInvalidPresentType,
				Description: fmt.Sprintf("Task \"%s\" has unknown present type: %s", task.Label(), task.PresentType),
				Orders:      []int{task.Order},
				TaskIDs:     idsOf(task),
			})
		}

		switch task.TaskType {
		case "", constants.TaskTypeLearning, constants.TaskTypeAssessment, constants.TaskTypeProject:
		default:
			result.add(Conflict{
				Type:        ConflictInvalidTaskType,
				Description: fmt.Sprintf("Task \"%s\" has unknown task type: %s", task.Label(), task.TaskType),
				Orders:      []int{task.Order},
				TaskIDs:     idsOf(task),
			})
		}

		if task.ID != "" {
			idOrders[task.ID] = append(idOrders[task.ID], task.Order)
		}
		orderIDs[task.Order] = append(orderIDs[task.Order], task.ID)
	}

	for _, id := range sortedKeys(idOrders) {
		if orders := idOrders[id]; len(orders) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateTaskID,
				Description: fmt.Sprintf("Duplicate task ID: \"%s\" (orders: %v)", id, orders),
				Orders:      orders,
				TaskIDs:     []string{id},
			})
		}
	}

	orders := make([]int, 0, len(orderIDs))
	for order := range orderIDs {
		orders = append(orders, order)
	}
	sort.Ints(orders)

	for _, order := range orders {
		if ids := orderIDs[order]; len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateOrder,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("%d tasks share order %d", len(ids), order),
				Orders:      []int{order},
				TaskIDs:     ids,
				Fixable:     true,
			})
		}
	}

	// Dense orders run 1..N
	for i, order := range orders {
		if order != i+1 {
			result.add(Conflict{
				Type:        ConflictOrderGap,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Task orders are not contiguous from 1 (found %v)", orders),
				Orders:      orders,
				Fixable:     true,
			})
			break
		}
	}

	return result
}

// ValidateTimeline checks tasks and the start instant against the calendar
func (v *Validator) ValidateTimeline(tasks []models.Task, cal calendar.Calendar, start time.Time) ValidationResult {
	result := v.ValidateTasks(tasks)

	if cal.IsLeaveDay(start) {
		desc := fmt.Sprintf("Start date %s is a leave day", start.Format(constants.DateFormat))
		if next, err := cal.NextWorkingDay(start, v.maxSkip); err == nil {
			desc += fmt.Sprintf("; the first task will start on %s", next.Format(constants.DateFormat))
		} else {
			desc += "; no working day found within the skip limit"
		}
		result.add(Conflict{
			Type:        ConflictStartOnLeaveDay,
			Severity:    SeverityWarning,
			Description: desc,
		})
	}

	return result
}

// ValidateSchedule checks a previously computed placement for tasks that run
// backwards or overlap their neighbours.
func (v *Validator) ValidateSchedule(scheduled []models.ScheduledTask) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ordered := make([]models.ScheduledTask, len(scheduled))
	copy(ordered, scheduled)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	for i, st := range ordered {
		if !st.End.After(st.Start) {
			result.add(Conflict{
				Type: ConflictEndBeforeStart,
				Description: fmt.Sprintf("Task \"%s\" ends (%s) before it starts (%s)",
					st.Label(), st.End.Format(constants.DateTimeFormat), st.Start.Format(constants.DateTimeFormat)),
				Orders:  []int{st.Order},
				TaskIDs: idsOf(st.Task),
			})
		}
		if i == 0 {
			continue
		}
		prev := ordered[i-1]
		if st.Start.Before(prev.End) {
			result.add(Conflict{
				Type: ConflictOverlappingTasks,
				Description: fmt.Sprintf("Tasks overlap: \"%s\" (ends %s) and \"%s\" (starts %s)",
					prev.Label(), prev.End.Format(constants.DateTimeFormat), st.Label(), st.Start.Format(constants.DateTimeFormat)),
				Orders:  []int{prev.Order, st.Order},
				TaskIDs: append(idsOf(prev.Task), idsOf(st.Task)...),
			})
		}
	}

	return result
}

func idsOf(task models.Task) []string {
	if task.ID == "" {
		return nil
	}
	return []string{task.ID}
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
