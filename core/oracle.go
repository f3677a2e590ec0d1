package core

import (
	"strconv"

	"github.com/signalsfoundry/constellation-deployment/model"
)

// GroupOracle answers feasibility questions about groups of a fixed set of
// satellites, addressed by index. Orderings are memoised by member set for
// the lifetime of the oracle, so the enumerator and the planner's costing
// step share work. An oracle belongs to a single planning call and is not
// safe for concurrent use.
type GroupOracle struct {
	sats   []model.Satellite
	limits Limits
	budget *Budget

	memo map[string]memoEntry
	key  []byte
}

type memoEntry struct {
	order Ordering
	ok    bool
}

// NewGroupOracle builds an oracle over sats. budget may be nil.
func NewGroupOracle(sats []model.Satellite, limits Limits, budget *Budget) *GroupOracle {
	return &GroupOracle{
		sats:   sats,
		limits: limits,
		budget: budget,
		memo:   make(map[string]memoEntry),
	}
}

// Satellite returns the satellite at index i.
func (o *GroupOracle) Satellite(i int) model.Satellite { return o.sats[i] }

// Len is the number of satellites the oracle covers.
func (o *GroupOracle) Len() int { return len(o.sats) }

// Compatible reports whether satellites i and j pass the RAAN drift check.
func (o *GroupOracle) Compatible(i, j int) bool {
	return RAANCompatible(o.sats[i], o.sats[j], o.limits.RAANTime, o.limits.RAANTolerance)
}

// Order returns the cheapest deployment order of members and whether it fits
// the tug budget. The result does not depend on the order of members.
func (o *GroupOracle) Order(members []int) (Ordering, bool, error) {
	sorted := append([]int(nil), members...)
	insertionSort(sorted)

	key := o.memoKey(sorted)
	if e, ok := o.memo[key]; ok {
		return e.order, e.ok, nil
	}

	group := make([]model.Satellite, len(sorted))
	for i, m := range sorted {
		group[i] = o.sats[m]
	}
	order, ok, err := OptimalOrder(group, o.limits.TugDeltaV, o.budget)
	if err != nil {
		return Ordering{}, false, err
	}
	o.memo[key] = memoEntry{order: order, ok: ok}
	return order, ok, nil
}

// CanJoin reports whether candidate may be added to the group members: it
// must be RAAN compatible with each of them and the enlarged group must be
// deployable within the tug budget.
func (o *GroupOracle) CanJoin(members []int, candidate int) (bool, error) {
	for _, m := range members {
		if !o.Compatible(m, candidate) {
			return false, nil
		}
	}
	joined := make([]int, 0, len(members)+1)
	joined = append(joined, members...)
	joined = append(joined, candidate)
	_, ok, err := o.Order(joined)
	return ok, err
}

// memoKey expects ascending members.
func (o *GroupOracle) memoKey(sorted []int) string {
	o.key = o.key[:0]
	for _, m := range sorted {
		o.key = strconv.AppendInt(o.key, int64(m), 36)
		o.key = append(o.key, ',')
	}
	return string(o.key)
}

// member lists are short and nearly always already ascending
func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}
