package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/constants"
)

// Holiday is a full-day non-working date
type Holiday struct {
	ID        string  `json:"id" yaml:"id,omitempty"`
	Date      string  `json:"date" yaml:"date"` // YYYY-MM-DD format
	Name      string  `json:"name" yaml:"name"`
	DeletedAt *string `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (h *Holiday) Validate() error {
	if h.Date == "" {
		return fmt.Errorf("holiday date cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, h.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return nil
}

// Time returns the holiday date at midnight UTC
func (h Holiday) Time() (time.Time, error) {
	return time.Parse(constants.DateFormat, h.Date)
}
