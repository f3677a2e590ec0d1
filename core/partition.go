package core

import (
	"iter"

	"github.com/signalsfoundry/constellation-deployment/model"
)

// Joiner decides whether item candidate may join a group that already holds
// members. Members are always lower-numbered than the candidate.
type Joiner interface {
	CanJoin(members []int, candidate int) (bool, error)
}

// Partition assigns each of n items a group label. Labels form a restricted
// growth string: Labels[0] == 0 and Labels[i] <= max(Labels[:i]) + 1.
type Partition struct {
	Labels []int
	Count  int // number of groups
}

// Groups returns the members of each group, in label order. Members within
// a group are ascending.
func (p Partition) Groups() [][]int {
	groups := make([][]int, p.Count)
	for item, label := range p.Labels {
		groups[label] = append(groups[label], item)
	}
	return groups
}

// Partitions lazily enumerates every partition of n items into non-empty
// groups whose growth was approved by j. Item i is placed in each existing
// group in turn, and then in a new group; a placement j rejects is never
// extended, so only the feasible frontier is explored. Partitions are
// yielded in lexicographic order of their labels. Singleton groups need no
// approval, so at least the all-singletons partition is always produced.
//
// The sequence can be ranged over more than once. Each partial partition
// costs one budget step; if j or the budget fails, the error is yielded once
// and the sequence ends.
func Partitions(n int, j Joiner, budget *Budget) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		labels := make([]int, n)
		groups := make([][]int, 0, n)

		var extend func(pos int) bool
		extend = func(pos int) bool {
			if pos == n {
				return yield(Partition{Labels: append([]int(nil), labels...), Count: len(groups)}, nil)
			}
			for g := 0; g <= len(groups); g++ {
				if err := budget.Spend(1); err != nil {
					yield(Partition{}, err)
					return false
				}

				labels[pos] = g
				if g == len(groups) {
					groups = append(groups, []int{pos})
					more := extend(pos + 1)
					groups = groups[:g]
					if !more {
						return false
					}
					continue
				}

				ok, err := j.CanJoin(groups[g], pos)
				if err != nil {
					yield(Partition{}, err)
					return false
				}
				if !ok {
					continue
				}
				groups[g] = append(groups[g], pos)
				more := extend(pos + 1)
				groups[g] = groups[g][:len(groups[g])-1]
				if !more {
					return false
				}
			}
			return true
		}
		extend(0)
	}
}

// FeasiblePartitions enumerates the partitions of sats in which every group
// is pairwise RAAN compatible and deployable within limits.TugDeltaV.
func FeasiblePartitions(sats []model.Satellite, limits Limits, budget *Budget) iter.Seq2[Partition, error] {
	return Partitions(len(sats), NewGroupOracle(sats, limits, budget), budget)
}
