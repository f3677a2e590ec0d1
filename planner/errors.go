package planner

import "errors"

var (
	// ErrInfeasible reports that no deployment of the candidate satisfies the
	// tug and RAAN limits, or that the search budget ran out before one was
	// found. Callers score it with a penalty; it is not a failure.
	ErrInfeasible = errors.New("no feasible deployment")

	// ErrInvariantViolation reports that the selected deployment does not
	// assign every satellite exactly once. It indicates a defect and must not
	// be scored.
	ErrInvariantViolation = errors.New("deployment invariant violated")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid planner config")
)
