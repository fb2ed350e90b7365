package constants

// PresentType represents how a trainee attends a task
type PresentType string

// TaskType represents the kind of timeline task
type TaskType string

const (
	AppName            = "traineeline"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/traineeline"
	DefaultDBFileName  = "traineeline.db"
	Version            = "v0.1.0"

	// Environment variables
	EnvPrefix        = "TRAINEELINE_"
	EnvConfigDir     = EnvPrefix + "CONFIG_DIR"
	EnvDB            = EnvPrefix + "DB"
	EnvDBConnection  = EnvPrefix + "DB_CONNECTION"
	EnvDayStart      = EnvPrefix + "DAY_START"
	EnvHalfDayEnd    = EnvPrefix + "HALF_DAY_END"
	EnvHalfDayStart  = EnvPrefix + "HALF_DAY_START"
	EnvDayEnd        = EnvPrefix + "DAY_END"
	EnvMaxLeaveSkip  = EnvPrefix + "MAX_LEAVE_SKIP"
	EnvMaxDuration   = EnvPrefix + "MAX_DURATION_DAYS"
	EnvTimezone      = EnvPrefix + "TIMEZONE"
	DefaultEnvFile   = ".env"
	DefaultTimezone  = "Local"
	DefaultLogFile   = "traineeline.log"
	DefaultLogSubdir = "logs"

	// Present types
	PresentRemote   PresentType = "remote"
	PresentInPerson PresentType = "in_person"

	// Task types
	TaskTypeLearning   TaskType = "learning"
	TaskTypeAssessment TaskType = "assessment"
	TaskTypeProject    TaskType = "project"
)
