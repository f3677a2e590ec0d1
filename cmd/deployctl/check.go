package main

import (
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/constellation-deployment/core"
	"github.com/signalsfoundry/constellation-deployment/internal/config"
	"github.com/signalsfoundry/constellation-deployment/internal/logging"
	"github.com/signalsfoundry/constellation-deployment/internal/manifest"
	"github.com/signalsfoundry/constellation-deployment/kb"
	"github.com/signalsfoundry/constellation-deployment/model"
	"github.com/signalsfoundry/constellation-deployment/timectrl"
)

// pairCheck is the feasibility of deploying two satellites together.
type pairCheck struct {
	A, B       string
	RAANGapDeg float64
	Compatible bool
	TugDeltaV  float64
	Fits       bool
}

// candidateCheck summarises one candidate without searching partitions.
type candidateCheck struct {
	Name        string
	Satellites  int
	Pairs       []pairCheck
	LowerBound  float64 // plane-change lower bound on one-launch tug delta-V
	OneLaunch   string  // yes, no or unknown when the search budget ran out
	OneLaunchDV float64
}

func checkCmd(root *rootOptions) *cobra.Command {
	var maxSteps int

	c := &cobra.Command{
		Use:   "check <manifest>",
		Short: "Report pairwise RAAN compatibility and tug delta-V feasibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			env, err := config.Load()
			if err != nil {
				return err
			}
			catalog := kb.DefaultCatalog()
			base, err := env.PlannerConfig(catalog)
			if err != nil {
				return err
			}
			cfg, err := m.Apply(base, catalog)
			if err != nil {
				return err
			}
			resolved, err := m.Resolve(model.DefaultElementBounds(), time.Now())
			if err != nil {
				return err
			}

			log := root.logger(cmd)
			out := cmd.OutOrStdout()
			for _, r := range resolved {
				budget := core.NewBudget(cmd.Context(), timectrl.System(), maxSteps, 0)
				res := checkCandidate(r, cfg.Limits(), budget)
				log.Debug(cmd.Context(), "checked candidate", checkFields(res)...)
				if err := writeCheckTable(out, res); err != nil {
					return err
				}
			}
			return nil
		},
	}

	c.Flags().IntVar(&maxSteps, "max-steps", 1_000_000, "search steps allowed for the one-launch check")
	return c
}

// checkCandidate reports pairwise feasibility and whether the whole candidate
// fits one launch. The one-launch search runs only when every pair is RAAN
// compatible and the plane-change lower bound fits the tug.
func checkCandidate(r manifest.Resolved, limits core.Limits, budget *core.Budget) candidateCheck {
	res := candidateCheck{
		Name:       r.Name,
		Satellites: len(r.Satellites),
		LowerBound: core.PlaneChangeLowerBound(r.Satellites),
	}

	for i := range r.Satellites {
		for j := i + 1; j < len(r.Satellites); j++ {
			a, b := r.Satellites[i], r.Satellites[j]
			dv := math.Min(core.TransferCost(a, b), core.TransferCost(b, a))
			res.Pairs = append(res.Pairs, pairCheck{
				A:          a.ID,
				B:          b.ID,
				RAANGapDeg: core.RAANGap(a.RAAN(), b.RAAN()) * 180 / math.Pi,
				Compatible: core.RAANCompatible(a, b, limits.RAANTime, limits.RAANTolerance),
				TugDeltaV:  dv,
				Fits:       dv <= limits.TugDeltaV,
			})
		}
	}

	res.OneLaunch = "no"
	if res.LowerBound > limits.TugDeltaV {
		return res
	}
	for _, p := range res.Pairs {
		if !p.Compatible {
			return res
		}
	}
	order, ok, err := core.OptimalOrder(r.Satellites, limits.TugDeltaV, budget)
	switch {
	case err != nil:
		res.OneLaunch = "unknown"
	case ok:
		res.OneLaunch = "yes"
		res.OneLaunchDV = order.TugDeltaV
	}
	return res
}

func checkFields(res candidateCheck) []logging.Field {
	return []logging.Field{
		logging.String("candidate", res.Name),
		logging.Int("pairs", len(res.Pairs)),
		logging.String("one_launch", res.OneLaunch),
	}
}
