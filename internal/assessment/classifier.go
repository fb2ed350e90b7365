// Package assessment decides which grading action applies to a trainee's
// assessment task, based on the attempts recorded so far and the task's
// current week window.
package assessment

import (
	"github.com/julianstephens/traineeline/internal/logger"
	"github.com/julianstephens/traineeline/internal/models"
)

const (
	branchInput  = "input"
	branchZeroth = "zeroth_assessment_entry"
	branchFirst  = "first_assessment_entry"
	branchSecond = "second_assessment_entry"
)

type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Classify returns the status for history within window.
func (c *Classifier) Classify(window models.Window, history models.History) (models.StatusCode, error) {
	if err := validate(window, history); err != nil {
		logger.Warn("Rejected attempt history", "error", err)
		return "", err
	}

	var (
		status models.StatusCode
		err    error
	)
	switch len(history.Attempts) {
	case 0:
		status, err = zerothEntry(window, history)
	case 1:
		status, err = firstEntry(window, history.Attempts[0])
	default:
		status, err = secondEntry(window, history)
	}
	if err != nil {
		logger.Warn("Could not classify attempt history", "attempts", len(history.Attempts), "open_ended", window.IsOpenEnded(), "error", err)
		return "", err
	}

	logger.Debug("Classified attempt history", "attempts", len(history.Attempts), "status", status)
	return status, nil
}

func validate(window models.Window, history models.History) error {
	if window.Start.IsZero() {
		return malformed(branchInput, "window has no start date")
	}
	if !window.IsOpenEnded() && window.End.Before(window.Start) {
		return malformed(branchInput, "window ends before it starts")
	}

	for i, a := range history.Attempts {
		if a.UpdatedAt.IsZero() {
			return malformed(branchInput, "attempt %d has no updated_at", i+1)
		}
		if i > 0 && a.UpdatedAt.Before(history.Attempts[i-1].UpdatedAt) {
			return malformed(branchInput, "attempts are not ordered oldest first (attempt %d)", i+1)
		}
	}

	if len(history.Attempts) == 0 {
		if history.RetryNeeded {
			return malformed(branchZeroth, "retry flagged on a task with no attempts")
		}
		if p := history.Placeholder; p != nil {
			if p.UpdatedAt.IsZero() {
				return malformed(branchZeroth, "placeholder has no updated_at")
			}
			if p.PresentStatus {
				return malformed(branchZeroth, "placeholder row is marked present")
			}
		}
	}

	if len(history.Attempts) > 2 && !window.IsOpenEnded() {
		return malformed(branchSecond, "%d attempts on a fixed window (at most 2 allowed)", len(history.Attempts))
	}

	return nil
}

// zerothEntry handles a task with no attempts. A placeholder row means the
// trainee was marked absent this week.
func zerothEntry(window models.Window, history models.History) (models.StatusCode, error) {
	p := history.Placeholder
	if window.IsOpenEnded() {
		if p != nil {
			return models.StatusInfiniteTestEdit, nil
		}
		return models.StatusInfiniteTestCreate, nil
	}

	if p != nil && window.Contains(p.UpdatedAt) {
		return models.StatusTestEdit, nil
	}
	return models.StatusTestCreate, nil
}

func firstEntry(window models.Window, a models.Attempt) (models.StatusCode, error) {
	if !window.IsOpenEnded() {
		if window.Contains(a.UpdatedAt) {
			if a.IsRetry {
				return models.StatusRetestEdit, nil
			}
			return models.StatusTestEdit, nil
		}
		if a.IsRetryNeeded {
			return models.StatusRetestCreate, nil
		}
		return models.StatusTestCompleted, nil
	}

	switch {
	case a.IsRetryNeeded && a.IsRetry:
		return models.StatusInfiniteRetestEdit, nil
	case a.IsRetryNeeded:
		return models.StatusInfiniteRetestCreate, nil
	case a.PresentStatus:
		if a.UpdatedAt.Before(window.Start) {
			return models.StatusTestCompleted, nil
		}
		return models.StatusTestEdit, nil
	}
	return "", unclassified(branchFirst, "open window, single absent attempt without retry flag")
}

func secondEntry(window models.Window, history models.History) (models.StatusCode, error) {
	last, _ := history.Last()

	if !window.IsOpenEnded() {
		if window.Contains(last.UpdatedAt) {
			return models.StatusRetestEdit, nil
		}
		return models.StatusTestCompleted, nil
	}

	switch {
	case !last.PresentStatus && last.IsRetry:
		return models.StatusInfiniteRetestEdit, nil
	case last.PresentStatus:
		if last.IsRetry && last.UpdatedAt.After(window.Start) {
			return models.StatusInfiniteRetestEdit, nil
		}
		return models.StatusTestCompleted, nil
	}
	return "", unclassified(branchSecond, "open window, latest attempt absent and not a retry")
}
