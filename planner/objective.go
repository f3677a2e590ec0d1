package planner

import (
	"errors"

	"github.com/signalsfoundry/constellation-deployment/model"
)

// Objective maps the outcome of Plan onto the value the design search
// minimises: the strategy's total delta-V, or penalty when the candidate is
// infeasible. Any other error, including ErrInvariantViolation, is returned
// unchanged and must not be scored.
func Objective(strategy model.DeploymentStrategy, err error, penalty float64) (float64, error) {
	switch {
	case err == nil:
		return strategy.TotalDeltaV(), nil
	case errors.Is(err, ErrInfeasible):
		return penalty, nil
	default:
		return 0, err
	}
}
