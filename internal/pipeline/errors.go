package pipeline

import "errors"

// Batch errors.
var (
	// ErrBreachCheckExhausted is returned when a breach lookup fails during
	// safe-mode generation. No passwords are returned; retry later or
	// disable safe mode.
	ErrBreachCheckExhausted = errors.New("breach check failed, batch aborted (retry or disable safe mode)")

	// ErrTooManyLeaks is returned when every candidate for one password was
	// found in the breach corpus within the retry budget.
	ErrTooManyLeaks = errors.New("too many leaked candidates in a row")

	// ErrInvalidCount is returned when the requested batch size is not positive.
	ErrInvalidCount = errors.New("password count must be positive")

	// ErrNoChecker is returned when safe mode is requested without a checker.
	ErrNoChecker = errors.New("safe mode requires a breach checker")
)
