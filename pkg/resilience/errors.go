package resilience

import (
	"errors"
)

var (
	// ErrInvalidInput rejects a run before any computation starts: a nil
	// graph, a negative budget, an unknown strategy or a bad fraction.
	ErrInvalidInput = errors.New("invalid simulation input")

	// ErrInvariantViolation aborts a run whose working graph became
	// inconsistent. No partial result is returned alongside it.
	ErrInvariantViolation = errors.New("simulation invariant violated")
)
