package planner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/signalsfoundry/constellation-deployment/model"
)

func TestObjective(t *testing.T) {
	strategy := model.NewDeploymentStrategy([]model.Installment{
		model.NewInstallment(nil, 9000, 120),
		model.NewInstallment(nil, 9100, 0),
	})
	fatal := fmt.Errorf("%w: satellite 2 assigned 0 times", ErrInvariantViolation)

	cases := []struct {
		name    string
		err     error
		want    float64
		wantErr error
	}{
		{"feasible", nil, 18220, nil},
		{"infeasible", fmt.Errorf("%w: budget", ErrInfeasible), 1e6, nil},
		{"invariant", fatal, 0, ErrInvariantViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Objective(strategy, tc.err, 1e6)
			if !errors.Is(err, tc.wantErr) || (tc.wantErr == nil && err != nil) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("objective = %v, want %v", got, tc.want)
			}
		})
	}
}
