package document

import (
	"fmt"

	"github.com/julianstephens/traineeline/internal/models"
)

// HolidayFile is an importable list of holidays
type HolidayFile struct {
	Holidays []models.Holiday `json:"holidays" yaml:"holidays"`
}

// LoadHolidays reads and validates a holiday list. Duplicate dates are
// rejected so an import never silently renames an entry twice.
func LoadHolidays(path string) ([]models.Holiday, error) {
	var f HolidayFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(f.Holidays))
	for i := range f.Holidays {
		h := &f.Holidays[i]
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		if seen[h.Date] {
			return nil, fmt.Errorf("holidays[%d]: duplicate date %s", i, h.Date)
		}
		seen[h.Date] = true
	}
	return f.Holidays, nil
}
