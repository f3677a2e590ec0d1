package core

import (
	"math"

	"github.com/signalsfoundry/constellation-deployment/model"
)

// DefaultRAANTolerance is the node separation [rad] two satellites may have
// and still share a launch without relying on differential drift. Satellites
// in the same nominal plane but with slightly different node angles (rounding
// in the design variables, or a plane deliberately spread by a fraction of a
// degree) would otherwise be split up whenever their precession rates match.
const DefaultRAANTolerance = 0.05

// Limits are the constraints a group of satellites must satisfy to share one
// launch vehicle and tug.
type Limits struct {
	TugDeltaV     float64 // m/s available to the tug
	RAANTime      float64 // s allowed for nodes to drift into place
	RAANTolerance float64 // rad of node separation accepted outright
}

// RAANGap is the angular distance between two node angles, in [0, pi].
func RAANGap(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// RAANCompatible reports whether differential nodal precession closes the
// node gap between a and b within timeLimit seconds. Gaps up to tolerance
// are accepted without drift. The relation is symmetric.
func RAANCompatible(a, b model.Satellite, timeLimit, tolerance float64) bool {
	gap := RAANGap(a.RAAN(), b.RAAN())
	rateA := NodalPrecessionRate(a.SMA(), a.Ecc(), a.Inc())
	rateB := NodalPrecessionRate(b.SMA(), b.Ecc(), b.Inc())
	return gap <= tolerance+math.Abs(rateA-rateB)*timeLimit
}

// Ordering is a deployment order for one group and the tug delta-V it needs.
type Ordering struct {
	Satellites []model.Satellite
	TugDeltaV  float64
}

// TransferCost is the tug delta-V to move from one satellite's orbit to the
// next: a Hohmann first burn merged with the inclination change, followed by
// the circularising burn. Orbits are treated as circular.
func TransferCost(from, to model.Satellite) float64 {
	r1, r2 := from.SMA(), to.SMA()
	v1 := CircularVelocity(r1)
	return CombinedPlaneChange(v1, v1+HohmannFirstBurn(r1, r2), from.Inc()-to.Inc()) +
		HohmannSecondBurn(r1, r2)
}

// DeploymentCost is the tug delta-V to visit the satellites in the given order.
func DeploymentCost(order []model.Satellite) float64 {
	dv := 0.0
	for i := 1; i < len(order); i++ {
		dv += TransferCost(order[i-1], order[i])
	}
	return dv
}

// PlaneChangeLowerBound is a lower bound on DeploymentCost over every order
// of group: each inclination step is charged as a simple plane change at
// the slowest (highest) orbit in the group.
func PlaneChangeLowerBound(group []model.Satellite) float64 {
	if len(group) <= 1 {
		return 0
	}
	maxSMA := math.Inf(-1)
	for _, s := range group {
		maxSMA = math.Max(maxSMA, s.SMA())
	}
	v := CircularVelocity(maxSMA)

	byInc := model.SortBy(group, model.ElementInc)
	dv := 0.0
	for i := 1; i < len(byInc); i++ {
		dv += SimplePlaneChange(v, byInc[i].Inc()-byInc[i-1].Inc())
	}
	return dv
}

// GroupFeasible finds the cheapest deployment order of group. It reports
// false when no order fits within dvLimit. Groups of zero or one satellite
// are always feasible at zero cost.
//
// The search is factorial in the group size; use OptimalOrder with a Budget
// when the group size is not known to be small.
func GroupFeasible(group []model.Satellite, dvLimit float64) (Ordering, bool) {
	o, ok, _ := OptimalOrder(group, dvLimit, nil)
	return o, ok
}

// OptimalOrder is GroupFeasible with a search budget. Members are first
// sorted by inclination, then every permutation is searched depth-first with
// branch-and-bound; among equally cheap orders the first in lexicographic
// order of the inclination-sorted list wins. The returned error is non-nil
// only when budget runs out.
func OptimalOrder(group []model.Satellite, dvLimit float64, budget *Budget) (Ordering, bool, error) {
	if len(group) <= 1 {
		return Ordering{Satellites: append([]model.Satellite(nil), group...)}, true, nil
	}

	sorted := model.SortBy(group, model.ElementInc)
	if PlaneChangeLowerBound(sorted) > dvLimit {
		return Ordering{}, false, nil
	}

	n := len(sorted)
	cost := make([][]float64, n)
	for i := range sorted {
		cost[i] = make([]float64, n)
		for j := range sorted {
			if i != j {
				cost[i][j] = TransferCost(sorted[i], sorted[j])
			}
		}
	}

	s := permutationSearch{
		cost:   cost,
		limit:  dvLimit,
		budget: budget,
		used:   make([]bool, n),
		path:   make([]int, 0, n),
		best:   math.Inf(1),
		order:  make([]int, n),
	}
	if err := s.visit(0); err != nil {
		return Ordering{}, false, err
	}
	if math.IsInf(s.best, 1) {
		return Ordering{}, false, nil
	}

	out := make([]model.Satellite, n)
	for i, idx := range s.order {
		out[i] = sorted[idx]
	}
	return Ordering{Satellites: out, TugDeltaV: s.best}, true, nil
}

type permutationSearch struct {
	cost   [][]float64
	limit  float64
	budget *Budget

	used []bool
	path []int

	best  float64
	order []int
}

func (s *permutationSearch) visit(partial float64) error {
	if err := s.budget.Spend(1); err != nil {
		return err
	}
	if len(s.path) == len(s.used) {
		if partial < s.best {
			s.best = partial
			copy(s.order, s.path)
		}
		return nil
	}
	for i := range s.used {
		if s.used[i] {
			continue
		}
		next := partial
		if k := len(s.path); k > 0 {
			next += s.cost[s.path[k-1]][i]
		}
		// costs are non-negative, so a partial order can only get dearer
		if next >= s.best || next > s.limit {
			continue
		}
		s.used[i] = true
		s.path = append(s.path, i)
		err := s.visit(next)
		s.path = s.path[:len(s.path)-1]
		s.used[i] = false
		if err != nil {
			return err
		}
	}
	return nil
}
