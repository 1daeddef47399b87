package service

import (
	"errors"
	"fmt"
)

var (
	ErrSignalNotFound   = errors.New("signal not found")
	ErrStrategyNotFound = errors.New("strategy not found")
	// ErrAlreadyResolved guards the one-shot lifecycle: resolving a completed
	// signal must never overwrite its result or resolved_at.
	ErrAlreadyResolved = errors.New("signal already resolved")
)

// ValidationError marks client input that failed shape validation. Handlers
// surface it as a 400 with the message as-is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
