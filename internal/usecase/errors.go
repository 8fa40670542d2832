package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrFatalRun marks failures outside the per-league boundary.
	ErrFatalRun = errors.New("sync run failed")
)
