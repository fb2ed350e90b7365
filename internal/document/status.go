package document

import (
	"fmt"
	"time"

	"github.com/julianstephens/traineeline/internal/models"
)

// StatusFile lists the attempt histories to classify
type StatusFile struct {
	Timezone string        `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	Entries  []StatusEntry `json:"entries" yaml:"entries"`
}

type StatusEntry struct {
	Trainee string       `json:"trainee,omitempty" yaml:"trainee,omitempty"`
	Task    string       `json:"task,omitempty" yaml:"task,omitempty"`
	Window  WindowEntry  `json:"window" yaml:"window"`
	History HistoryEntry `json:"history" yaml:"history"`
}

// WindowEntry spans whole days. An empty End means the window has no end date.
type WindowEntry struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

type HistoryEntry struct {
	Attempts    []AttemptEntry `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Placeholder *AttemptEntry  `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	RetryNeeded bool           `json:"retry_needed,omitempty" yaml:"retry_needed,omitempty"`
}

type AttemptEntry struct {
	UpdatedAt     string `json:"updated_at" yaml:"updated_at"`
	IsRetry       bool   `json:"is_retry,omitempty" yaml:"is_retry,omitempty"`
	PresentStatus bool   `json:"present_status,omitempty" yaml:"present_status,omitempty"`
	IsRetryNeeded bool   `json:"is_retry_needed,omitempty" yaml:"is_retry_needed,omitempty"`
}

// StatusCase is a decoded entry ready for classification
type StatusCase struct {
	Trainee string
	Task    string
	Window  models.Window
	History models.History
}

// LoadStatus reads a status file
func LoadStatus(path string, loc *time.Location) ([]StatusCase, error) {
	var f StatusFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return f.Resolve(loc)
}

// Resolve parses every entry of f
func (f StatusFile) Resolve(loc *time.Location) ([]StatusCase, error) {
	loc, err := resolveLocation(f.Timezone, loc)
	if err != nil {
		return nil, err
	}

	cases := make([]StatusCase, 0, len(f.Entries))
	for i, e := range f.Entries {
		c, err := e.resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (e StatusEntry) resolve(loc *time.Location) (StatusCase, error) {
	start, err := ParseInstant(e.Window.Start, loc)
	if err != nil {
		return StatusCase{}, fmt.Errorf("window.start: %w", err)
	}
	end := models.NoEndDate
	if e.Window.End != "" {
		if end, err = ParseInstant(e.Window.End, loc); err != nil {
			return StatusCase{}, fmt.Errorf("window.end: %w", err)
		}
	}

	h := models.History{RetryNeeded: e.History.RetryNeeded}
	for i, a := range e.History.Attempts {
		attempt, err := a.resolve(loc)
		if err != nil {
			return StatusCase{}, fmt.Errorf("history.attempts[%d]: %w", i, err)
		}
		h.Attempts = append(h.Attempts, attempt)
	}
	if e.History.Placeholder != nil {
		p, err := e.History.Placeholder.resolve(loc)
		if err != nil {
			return StatusCase{}, fmt.Errorf("history.placeholder: %w", err)
		}
		h.Placeholder = &p
	}

	return StatusCase{
		Trainee: e.Trainee,
		Task:    e.Task,
		Window:  models.NewWindow(start, end),
		History: h,
	}, nil
}

func (a AttemptEntry) resolve(loc *time.Location) (models.Attempt, error) {
	updatedAt, err := ParseInstant(a.UpdatedAt, loc)
	if err != nil {
		return models.Attempt{}, fmt.Errorf("updated_at: %w", err)
	}
	return models.Attempt{
		UpdatedAt:     updatedAt,
		IsRetry:       a.IsRetry,
		PresentStatus: a.PresentStatus,
		IsRetryNeeded: a.IsRetryNeeded,
	}, nil
}
