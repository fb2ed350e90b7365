// Package config loads runtime settings from an optional .env file and the
// process environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/julianstephens/traineeline/internal/constants"
	"github.com/julianstephens/traineeline/internal/models"
	"github.com/julianstephens/traineeline/internal/scheduler"
)

// Config is the resolved runtime configuration
type Config struct {
	ConfigDir string
	// DB is a SQLite path, a PostgreSQL connection string, "keyring" or "env"
	DB        string
	Timezone  string
	Scheduler scheduler.Config
}

// Load reads envFile (if it exists) into the environment without overriding
// variables that are already set, then builds the configuration.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to access %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables, using
// defaults for anything unset.
func FromEnv() (Config, error) {
	configDir, err := ExpandHome(getEnv(constants.EnvConfigDir, constants.DefaultConfigDir))
	if err != nil {
		return Config{}, err
	}

	hours, err := scheduler.ParseWorkingHours(
		getEnv(constants.EnvDayStart, constants.DefaultDayStart),
		getEnv(constants.EnvHalfDayEnd, constants.DefaultHalfDayEnd),
		getEnv(constants.EnvHalfDayStart, constants.DefaultHalfDayStart),
		getEnv(constants.EnvDayEnd, constants.DefaultDayEnd),
	)
	if err != nil {
		return Config{}, fmt.Errorf("invalid working hours: %w", err)
	}

	maxSkip, err := strconv.Atoi(getEnv(constants.EnvMaxLeaveSkip, strconv.Itoa(constants.DefaultMaxLeaveSkip)))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", constants.EnvMaxLeaveSkip, err)
	}
	if maxSkip < 1 {
		return Config{}, fmt.Errorf("invalid %s: must be at least 1", constants.EnvMaxLeaveSkip)
	}

	maxDuration, err := strconv.ParseFloat(getEnv(constants.EnvMaxDuration, strconv.Itoa(constants.DefaultMaxDurationDays)), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", constants.EnvMaxDuration, err)
	}
	if !models.IsValidDuration(maxDuration) {
		return Config{}, fmt.Errorf("invalid %s: must be a positive multiple of 0.5", constants.EnvMaxDuration)
	}

	timezone := getEnv(constants.EnvTimezone, constants.DefaultTimezone)
	if _, err := LoadLocation(timezone); err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", constants.EnvTimezone, timezone, err)
	}

	db := getEnv(constants.EnvDB, filepath.Join(configDir, constants.DefaultDBFileName))

	return Config{
		ConfigDir: configDir,
		DB:        db,
		Timezone:  timezone,
		Scheduler: scheduler.Config{
			Hours:           hours,
			MaxLeaveSkip:    maxSkip,
			MaxDurationDays: maxDuration,
		},
	}, nil
}

// Location returns the configured timezone
func (c Config) Location() *time.Location {
	loc, err := LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
