package scheduler

import (
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/constants"
)

// WorkingHours holds the clock times bounding full and half days.
// Only the hour and minute of each value are used.
type WorkingHours struct {
	DayStart     time.Time
	HalfDayEnd   time.Time
	HalfDayStart time.Time
	DayEnd       time.Time
}

// Config controls how the scheduler places tasks
type Config struct {
	Hours        WorkingHours
	MaxLeaveSkip int
	// MaxDurationDays rejects tasks longer than this many days
	MaxDurationDays float64
}

// ParseWorkingHours parses HH:MM clock times and checks their ordering.
func ParseWorkingHours(dayStart, halfDayEnd, halfDayStart, dayEnd string) (WorkingHours, error) {
	var h WorkingHours
	fields := []struct {
		name  string
		value string
		dst   *time.Time
	}{
		{"day start", dayStart, &h.DayStart},
		{"half-day end", halfDayEnd, &h.HalfDayEnd},
		{"half-day start", halfDayStart, &h.HalfDayStart},
		{"day end", dayEnd, &h.DayEnd},
	}
	for _, f := range fields {
		t, err := time.Parse(constants.TimeFormat, f.value)
		if err != nil {
			return WorkingHours{}, fmt.Errorf("invalid %s time %q (expected HH:MM): %w", f.name, f.value, err)
		}
		*f.dst = t
	}

	if err := h.Validate(); err != nil {
		return WorkingHours{}, err
	}
	return h, nil
}

// Validate checks DayStart < HalfDayEnd <= HalfDayStart < DayEnd
func (h WorkingHours) Validate() error {
	if !h.DayStart.Before(h.HalfDayEnd) {
		return fmt.Errorf("day start must be before half-day end")
	}
	if h.HalfDayStart.Before(h.HalfDayEnd) {
		return fmt.Errorf("half-day start must not be before half-day end")
	}
	if !h.HalfDayStart.Before(h.DayEnd) {
		return fmt.Errorf("half-day start must be before day end")
	}
	return nil
}

// DefaultWorkingHours returns 09:00-13:00 / 14:00-18:00
func DefaultWorkingHours() WorkingHours {
	h, err := ParseWorkingHours(constants.DefaultDayStart, constants.DefaultHalfDayEnd, constants.DefaultHalfDayStart, constants.DefaultDayEnd)
	if err != nil {
		panic(err)
	}
	return h
}

// DefaultConfig returns the standard working hours and leave-skip bound
func DefaultConfig() Config {
	return Config{
		Hours:           DefaultWorkingHours(),
		MaxLeaveSkip:    constants.DefaultMaxLeaveSkip,
		MaxDurationDays: constants.DefaultMaxDurationDays,
	}
}
