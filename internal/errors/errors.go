package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/traineeline/internal/assessment"
	"github.com/julianstephens/traineeline/internal/logger"
	"github.com/julianstephens/traineeline/internal/scheduler"
)

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line for known domain errors.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns remediation advice for scheduling and classification errors
func Hint(err error) string {
	switch {
	case stderrors.Is(err, scheduler.ErrInvalidDuration):
		return "task durations must be positive multiples of 0.5 days"
	case stderrors.Is(err, scheduler.ErrEmptyTimeline):
		return "a timeline must contain at least one task"
	case stderrors.Is(err, scheduler.ErrUnboundedSkip):
		return "the holiday calendar leaves no working day ahead; check for bulk-imported holidays"
	case stderrors.Is(err, scheduler.ErrTaskNotFound):
		return "task orders run from 1 to the number of tasks"
	case stderrors.Is(err, assessment.ErrMalformedHistory):
		return "attempts need updated_at timestamps, ordered oldest first"
	case stderrors.Is(err, assessment.ErrUnclassified):
		return "this attempt combination has no defined status; report it for clarification"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
