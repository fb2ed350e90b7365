package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is used when printing scheduled instants
	DateTimeFormat = "2006-01-02 15:04"

	// Working hours. A full day runs DayStart-DayEnd, a half day is either
	// DayStart-HalfDayEnd (morning) or HalfDayStart-DayEnd (afternoon).
	DefaultDayStart     = "09:00"
	DefaultHalfDayEnd   = "13:00"
	DefaultHalfDayStart = "14:00"
	DefaultDayEnd       = "18:00"

	// DefaultMaxLeaveSkip bounds the number of consecutive leave days the
	// scheduler walks over before giving up.
	DefaultMaxLeaveSkip = 366

	// DefaultMaxDurationDays caps a single task's duration; the day
	// accumulation loop runs once per working day.
	DefaultMaxDurationDays = 3650
)
