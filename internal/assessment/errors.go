package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHistory is returned for inconsistent attempt data or windows
	ErrMalformedHistory = errors.New("malformed attempt history")
	// ErrUnclassified is returned for histories no status rule covers.
	// These combinations need a product decision and are never guessed.
	ErrUnclassified = errors.New("attempt history matches no status rule")
)

// ClassificationError carries the branch that rejected the history
type ClassificationError struct {
	Branch string
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Branch, e.Err, e.Reason)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

func malformed(branch, format string, args ...interface{}) error {
	return &ClassificationError{Branch: branch, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedHistory}
}

func unclassified(branch, format string, args ...interface{}) error {
	return &ClassificationError{Branch: branch, Reason: fmt.Sprintf(format, args...), Err: ErrUnclassified}
}
