package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signalsfoundry/constellation-deployment/model"
)

func TestGroupOracle_OrderIgnoresMemberOrder(t *testing.T) {
	o := NewGroupOracle(mixedGroup(t, 4), Limits{TugDeltaV: math.Inf(1), RAANTime: week}, nil)

	a, okA, err := o.Order([]int{0, 1, 2, 3})
	if err != nil || !okA {
		t.Fatalf("Order: ok=%v err=%v", okA, err)
	}
	b, okB, err := o.Order([]int{3, 1, 0, 2})
	if err != nil || !okB {
		t.Fatalf("Order: ok=%v err=%v", okB, err)
	}
	if diff := cmp.Diff(a.Satellites, b.Satellites, cmp.Comparer(func(x, y model.Satellite) bool { return x == y })); diff != "" {
		t.Fatalf("orders differ (-sorted +shuffled):\n%s", diff)
	}
	if a.TugDeltaV != b.TugDeltaV {
		t.Fatalf("costs differ: %v vs %v", a.TugDeltaV, b.TugDeltaV)
	}
}

func TestGroupOracle_MemoAvoidsRepeatSearch(t *testing.T) {
	budget := NewBudget(context.Background(), nil, 0, 0)
	o := NewGroupOracle(mixedGroup(t, 5), Limits{TugDeltaV: math.Inf(1), RAANTime: week}, budget)

	if _, _, err := o.Order([]int{0, 1, 2, 3, 4}); err != nil {
		t.Fatalf("Order: %v", err)
	}
	spent := budget.Steps()
	if _, _, err := o.Order([]int{4, 3, 2, 1, 0}); err != nil {
		t.Fatalf("Order: %v", err)
	}
	if budget.Steps() != spent {
		t.Fatalf("memoised order spent %d more steps", budget.Steps()-spent)
	}
}

func TestGroupOracle_CanJoin(t *testing.T) {
	sats := []model.Satellite{
		mustSat(t, "a", 7e6, 0.9, 0),
		mustSat(t, "b", 7e6, 0.9, 0.01),
		mustSat(t, "far-node", 7e6, 0.9, 1.5),
		mustSat(t, "steep", 7e6, 1.9, 0),
	}
	o := NewGroupOracle(sats, Limits{TugDeltaV: 500, RAANTime: week, RAANTolerance: DefaultRAANTolerance}, nil)

	cases := []struct {
		name      string
		members   []int
		candidate int
		want      bool
	}{
		{"same plane", []int{0}, 1, true},
		{"node too far", []int{0, 1}, 2, false},
		{"plane change too costly", []int{0}, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := o.CanJoin(tc.members, tc.candidate)
			if err != nil {
				t.Fatalf("CanJoin: %v", err)
			}
			if got != tc.want {
				t.Fatalf("CanJoin(%v, %d) = %v, want %v", tc.members, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestGroupOracle_BudgetErrorPropagates(t *testing.T) {
	budget := NewBudget(context.Background(), nil, 5, 0)
	o := NewGroupOracle(mixedGroup(t, 6), Limits{TugDeltaV: math.Inf(1), RAANTime: week}, budget)
	_, err := o.CanJoin([]int{0, 1, 2, 3, 4}, 5)
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}
}
