package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/traineeline/internal/models"
)

// Every edit returns a new, densely numbered slice and leaves its input
// untouched. Callers reschedule afterwards since every later task shifts.

// TasksOf strips scheduling data from scheduled tasks
func TasksOf(scheduled []models.ScheduledTask) []models.Task {
	tasks := make([]models.Task, len(scheduled))
	for i, st := range scheduled {
		tasks[i] = st.Task
	}
	return tasks
}

// Renumber sorts tasks by Order (stable) and assigns orders 1..N
func Renumber(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// InsertAt inserts task so that it ends up with the given order (1..N+1)
func InsertAt(tasks []models.Task, order int, task models.Task) ([]models.Task, error) {
	if !models.IsValidDuration(task.DurationDays) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, task.DurationDays)
	}
	ordered := Renumber(tasks)
	if order < 1 || order > len(ordered)+1 {
		return nil, fmt.Errorf("insert position %d out of range 1..%d", order, len(ordered)+1)
	}

	out := make([]models.Task, 0, len(ordered)+1)
	out = append(out, ordered[:order-1]...)
	out = append(out, task)
	out = append(out, ordered[order-1:]...)
	for i := range out {
		out[i].Order = i + 1
	}
	return out, nil
}

// RemoveAt removes the task with the given order. The last task of a
// timeline cannot be removed.
func RemoveAt(tasks []models.Task, order int) ([]models.Task, error) {
	ordered := Renumber(tasks)
	idx, err := indexOf(ordered, order)
	if err != nil {
		return nil, err
	}
	if len(ordered) == 1 {
		return nil, fmt.Errorf("%w: cannot remove the only task", ErrEmptyTimeline)
	}

	out := make([]models.Task, 0, len(ordered)-1)
	out = append(out, ordered[:idx]...)
	out = append(out, ordered[idx+1:]...)
	for i := range out {
		out[i].Order = i + 1
	}
	return out, nil
}

// Move moves the task at order from to order to
func Move(tasks []models.Task, from, to int) ([]models.Task, error) {
	ordered := Renumber(tasks)
	idx, err := indexOf(ordered, from)
	if err != nil {
		return nil, err
	}
	if to < 1 || to > len(ordered) {
		return nil, fmt.Errorf("move target %d out of range 1..%d", to, len(ordered))
	}

	moving := ordered[idx]
	rest := make([]models.Task, 0, len(ordered)-1)
	rest = append(rest, ordered[:idx]...)
	rest = append(rest, ordered[idx+1:]...)

	out := make([]models.Task, 0, len(ordered))
	out = append(out, rest[:to-1]...)
	out = append(out, moving)
	out = append(out, rest[to-1:]...)
	for i := range out {
		out[i].Order = i + 1
	}
	return out, nil
}

// SetDuration changes the duration of the task at order
func SetDuration(tasks []models.Task, order int, days float64) ([]models.Task, error) {
	if !models.IsValidDuration(days) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, days)
	}
	ordered := Renumber(tasks)
	idx, err := indexOf(ordered, order)
	if err != nil {
		return nil, err
	}
	ordered[idx].DurationDays = days
	return ordered, nil
}

func indexOf(ordered []models.Task, order int) (int, error) {
	if order < 1 || order > len(ordered) {
		return 0, fmt.Errorf("%w: order %d", ErrTaskNotFound, order)
	}
	return order - 1, nil
}
