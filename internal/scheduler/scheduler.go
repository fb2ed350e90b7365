// Package scheduler places timeline tasks on working days.
//
// Each task consumes whole or half working days. A half day is either the
// morning (DayStart to HalfDayEnd) or the afternoon (HalfDayStart to DayEnd).
// A task that ends at HalfDayEnd hands the afternoon of the same date to the
// next task.
package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/traineeline/internal/calendar"
	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/logger"
	"github.com/julianstephens/traineeline/internal/models"
)

type Scheduler struct {
	cfg Config
}

func New() *Scheduler {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a scheduler; zero-valued fields take the defaults.
func NewWithConfig(cfg Config) *Scheduler {
	if cfg.Hours == (WorkingHours{}) {
		cfg.Hours = DefaultWorkingHours()
	}
	if cfg.MaxLeaveSkip <= 0 {
		cfg.MaxLeaveSkip = constants.DefaultMaxLeaveSkip
	}
	if cfg.MaxDurationDays <= 0 {
		cfg.MaxDurationDays = constants.DefaultMaxDurationDays
	}
	return &Scheduler{cfg: cfg}
}

// Config returns the scheduler configuration
func (s *Scheduler) Config() Config {
	return s.cfg
}

// State is the running position carried from one task to the next.
type State struct {
	Pointer time.Time
	HalfDay bool
}

// Step places a single task starting from state and returns the state for
// the following task.
func (s *Scheduler) Step(cal calendar.Calendar, state State, task models.Task) (models.ScheduledTask, State, error) {
	if !models.IsValidDuration(task.DurationDays) {
		return models.ScheduledTask{}, state, fmt.Errorf("%w: %v", ErrInvalidDuration, task.DurationDays)
	}
	if task.DurationDays > s.cfg.MaxDurationDays {
		return models.ScheduledTask{}, state, fmt.Errorf("%w: %v exceeds the %v day limit", ErrInvalidDuration, task.DurationDays, s.cfg.MaxDurationDays)
	}

	hours := s.cfg.Hours
	pointer := state.Pointer

	// Previous task ran to the end of the day
	if sameClock(pointer, hours.DayEnd) {
		pointer = calendar.At(calendar.AddDays(pointer, 1), hours.DayStart)
	}

	pointer, err := cal.NextWorkingDay(pointer, s.cfg.MaxLeaveSkip)
	if err != nil {
		return models.ScheduledTask{}, state, err
	}

	startClock := hours.DayStart
	if state.HalfDay {
		startClock = hours.HalfDayStart
	}
	start := calendar.At(pointer, startClock)

	halfFraction := models.IsHalfDayFraction(task.DurationDays)
	endsHalfDay := (!state.HalfDay && halfFraction) || (state.HalfDay && !halfFraction)

	cursor := calendar.DateOf(pointer)
	endDate := cursor
	consumed := 0.0
	if state.HalfDay {
		// Afternoon of the start date is already counted
		consumed = 0.5
		cursor = calendar.AddDays(cursor, 1)
	}

	for consumed < task.DurationDays {
		cursor, err = cal.NextWorkingDay(cursor, s.cfg.MaxLeaveSkip)
		if err != nil {
			return models.ScheduledTask{}, state, err
		}
		endDate = cursor
		if task.DurationDays-consumed == 0.5 {
			consumed += 0.5
			break
		}
		consumed++
		cursor = calendar.AddDays(cursor, 1)
	}

	endClock := hours.DayEnd
	if endsHalfDay {
		endClock = hours.HalfDayEnd
	}
	end := calendar.At(endDate, endClock)

	scheduled := models.ScheduledTask{
		Task:          task,
		Start:         start,
		End:           end,
		EndsAfternoon: endsHalfDay,
	}

	logger.Debug("Placed task",
		"order", task.Order,
		"duration", task.DurationDays,
		"start", start.Format(constants.DateTimeFormat),
		"end", end.Format(constants.DateTimeFormat),
		"half_day_end", endsHalfDay,
	)

	return scheduled, State{Pointer: end, HalfDay: endsHalfDay}, nil
}

// Schedule places tasks in slice order starting at start. Tasks are
// numbered 1..N and tasks without an ID get one.
func (s *Scheduler) Schedule(tasks []models.Task, cal calendar.Calendar, start time.Time, startingHalfDay bool) ([]models.ScheduledTask, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyTimeline
	}

	scheduled := make([]models.ScheduledTask, 0, len(tasks))
	state := State{Pointer: start, HalfDay: startingHalfDay}

	for i, task := range tasks {
		task.Order = i + 1
		if task.ID == "" {
			task.ID = uuid.New().String()
		}

		placed, next, err := s.Step(cal, state, task)
		if err != nil {
			return nil, &SchedulingError{Order: task.Order, TaskID: task.ID, Err: err}
		}
		scheduled = append(scheduled, placed)
		state = next
	}

	logger.Info("Scheduled timeline", "tasks", len(scheduled), "start", start.Format(constants.DateTimeFormat))
	return scheduled, nil
}

// Reschedule recomputes dates for an existing timeline after its tasks were
// edited, inserted, removed or reordered. Tasks are taken in Order and
// renumbered densely; IDs are kept.
func (s *Scheduler) Reschedule(existing []models.ScheduledTask, cal calendar.Calendar, start time.Time, startingHalfDay bool) ([]models.ScheduledTask, error) {
	return s.Schedule(Renumber(TasksOf(existing)), cal, start, startingHalfDay)
}

// LatestEndDate returns the end of the task with the highest order, which
// is the expected completion date of the timeline.
func LatestEndDate(scheduled []models.ScheduledTask) (time.Time, error) {
	if len(scheduled) == 0 {
		return time.Time{}, ErrEmptyTimeline
	}
	latest := scheduled[0]
	for _, st := range scheduled[1:] {
		if st.Order > latest.Order {
			latest = st
		}
	}
	return latest.End, nil
}

func sameClock(t, clock time.Time) bool {
	return t.Hour() == clock.Hour() && t.Minute() == clock.Minute()
}
