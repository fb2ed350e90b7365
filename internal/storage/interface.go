// Package storage defines the holiday table the working calendar is derived
// from. Timelines and attempt histories are never persisted.
package storage

import (
	"errors"

	"github.com/julianstephens/traineeline/internal/models"
)

// ErrNotFound is returned when no live holiday exists for a date
var ErrNotFound = errors.New("holiday not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Holidays
	AddHoliday(models.Holiday) error
	GetHoliday(date string) (models.Holiday, error)
	// GetHolidays returns live holidays with from <= date <= to, ordered by date.
	GetHolidays(from, to string) ([]models.Holiday, error)
	GetAllHolidays(includeDeleted bool) ([]models.Holiday, error)
	DeleteHoliday(date string) error
	RestoreHoliday(date string) error

	// Schema
	SchemaVersion() (current int, latest int, err error)

	// Utils
	GetConfigPath() string
}
