// Package planner groups the satellites of a constellation candidate into
// launches, orders each launch's deployment sequence and prices it in
// delta-V.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/signalsfoundry/constellation-deployment/core"
	"github.com/signalsfoundry/constellation-deployment/internal/logging"
	"github.com/signalsfoundry/constellation-deployment/model"
	"github.com/signalsfoundry/constellation-deployment/timectrl"
)

const tracerName = "github.com/signalsfoundry/constellation-deployment/planner"

// Plan outcomes reported to the MetricsRecorder.
const (
	OutcomeFeasible   = "feasible"
	OutcomeInfeasible = "infeasible"
	OutcomeError      = "error"
)

// MetricsRecorder receives per-call planning measurements.
type MetricsRecorder interface {
	ObservePlan(outcome string, launches, partitions int, elapsed time.Duration)
	AddBatchInFlight(delta int)
}

// Option customises Planner construction.
type Option func(*Planner)

// WithMetricsRecorder attaches an optional metrics recorder.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

// WithClock sets the clock used for search deadlines and timings.
func WithClock(c timectrl.Clock) Option {
	return func(p *Planner) {
		if c != nil {
			p.clock = c
		}
	}
}

// Planner computes deployment strategies. It holds no per-call state and is
// safe for concurrent use.
type Planner struct {
	cfg     Config
	log     logging.Logger
	metrics MetricsRecorder
	clock   timectrl.Clock
}

// New validates cfg and returns a Planner. A nil log discards output.
func New(cfg Config, log logging.Logger, opts ...Option) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Noop()
	}
	p := &Planner{
		cfg:   cfg,
		log:   log,
		clock: timectrl.System(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Config returns the planner's settings.
func (p *Planner) Config() Config { return p.cfg }

// group is one installment under construction, as indices into the input.
type group struct {
	members []int
	order   core.Ordering
	launch  float64
}

// Plan finds the deployment of sats with the fewest launches, breaking ties
// by total delta-V. Satellites sharing an exact plane in buckets larger than
// the configured threshold are first tried as one pre-formed installment;
// the remaining pool is split by exhaustive, pruned partition search.
//
// The result depends only on sats and its order. Plan returns ErrInfeasible
// when the search budget runs out, the context error when ctx is done, and
// ErrInvariantViolation if the chosen deployment does not cover the input
// exactly once.
func (p *Planner) Plan(ctx context.Context, sats []model.Satellite) (model.DeploymentStrategy, error) {
	start := p.clock.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "planner.Plan")
	defer span.End()
	span.SetAttributes(attribute.Int("deployment.satellites", len(sats)))
	log := logging.FromContext(ctx, p.log)

	run := &planRun{
		cfg:    p.cfg,
		sats:   sats,
		budget: core.NewBudget(ctx, p.clock, p.cfg.MaxSearchSteps, p.cfg.MaxSearchDuration),
	}
	run.oracle = core.NewGroupOracle(sats, p.cfg.Limits(), run.budget)

	strategy, err := run.plan(ctx, log)
	elapsed := p.clock.Now().Sub(start)

	outcome := OutcomeFeasible
	switch {
	case errors.Is(err, ErrInfeasible):
		outcome = OutcomeInfeasible
	case err != nil:
		outcome = OutcomeError
	}
	if p.metrics != nil {
		p.metrics.ObservePlan(outcome, strategy.Launches(), run.partitions, elapsed)
	}

	span.SetAttributes(
		attribute.String("deployment.outcome", outcome),
		attribute.Int("deployment.partitions", run.partitions),
		attribute.Int("deployment.search_steps", run.budget.Steps()),
	)
	if err != nil {
		span.RecordError(err)
		if outcome == OutcomeError {
			span.SetStatus(codes.Error, err.Error())
		}
		log.Debug(ctx, "deployment plan failed",
			logging.String("outcome", outcome),
			logging.Int("satellites", len(sats)),
			logging.Duration("elapsed", elapsed),
			logging.Err(err))
		return model.DeploymentStrategy{}, err
	}

	span.SetAttributes(
		attribute.Int("deployment.launches", strategy.Launches()),
		attribute.Float64("deployment.total_delta_v", strategy.TotalDeltaV()),
	)
	log.Debug(ctx, "deployment planned",
		logging.Int("satellites", len(sats)),
		logging.Int("launches", strategy.Launches()),
		logging.Float("total_delta_v", strategy.TotalDeltaV()),
		logging.Int("partitions", run.partitions),
		logging.Int("search_steps", run.budget.Steps()),
		logging.Duration("elapsed", elapsed))
	return strategy, nil
}

// planRun is the state of one Plan call.
type planRun struct {
	cfg    Config
	sats   []model.Satellite
	budget *core.Budget
	oracle *core.GroupOracle

	partitions int
}

func (r *planRun) plan(ctx context.Context, log logging.Logger) (model.DeploymentStrategy, error) {
	fixed, pool, err := r.preCluster()
	if err != nil {
		return model.DeploymentStrategy{}, r.searchError(err)
	}
	log.Debug(ctx, "deployment pre-clustered",
		logging.Int("fixed_groups", len(fixed)),
		logging.Int("pool", len(pool)))

	var (
		best       []group
		bestTotal  float64
		haveBest   bool
		joiner     = &poolJoiner{oracle: r.oracle, pool: pool}
		candidates = make([]group, 0, len(fixed)+len(pool))
	)
	for part, err := range core.Partitions(len(pool), joiner, r.budget) {
		if err != nil {
			return model.DeploymentStrategy{}, r.searchError(err)
		}
		launches := len(fixed) + part.Count
		if haveBest && launches > len(best) {
			continue
		}

		candidates = append(candidates[:0], fixed...)
		feasible := true
		for _, local := range part.Groups() {
			g, ok, err := r.costGroup(toGlobal(pool, local))
			if err != nil {
				return model.DeploymentStrategy{}, r.searchError(err)
			}
			if !ok {
				feasible = false
				break
			}
			candidates = append(candidates, g)
		}
		if !feasible {
			continue
		}
		r.partitions++

		total := 0.0
		for _, g := range candidates {
			total += g.launch + g.order.TugDeltaV
		}
		if !haveBest || launches < len(best) || total < bestTotal {
			best = append(best[:0], candidates...)
			bestTotal = total
			haveBest = true
		}
		// A single leftover group is the only partition with that few launches.
		if part.Count <= 1 {
			break
		}
	}
	if !haveBest {
		return model.DeploymentStrategy{}, fmt.Errorf("%w: no partition covers all %d satellites", ErrInfeasible, len(r.sats))
	}

	if err := verifyCoverage(len(r.sats), best); err != nil {
		return model.DeploymentStrategy{}, err
	}

	installments := make([]model.Installment, len(best))
	for i, g := range best {
		installments[i] = model.NewInstallment(g.order.Satellites, g.launch, g.order.TugDeltaV)
	}
	return model.NewDeploymentStrategy(installments), nil
}

// preCluster buckets satellites by exact (inc, raan). Buckets larger than the
// threshold that fit the tug budget become fixed groups, in order of first
// appearance; every other satellite goes to the pool in input order.
func (r *planRun) preCluster() ([]group, []int, error) {
	type plane struct{ inc, raan float64 }

	var keys []plane
	buckets := make(map[plane][]int)
	for i, s := range r.sats {
		k := plane{inc: s.Inc(), raan: s.RAAN()}
		if _, ok := buckets[k]; !ok {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], i)
	}

	assigned := make([]bool, len(r.sats))
	var fixed []group
	for _, k := range keys {
		members := buckets[k]
		if len(members) <= r.cfg.LargeGroupThreshold {
			continue
		}
		g, ok, err := r.costGroup(members)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		fixed = append(fixed, g)
		for _, m := range members {
			assigned[m] = true
		}
	}

	pool := make([]int, 0, len(r.sats))
	for i := range r.sats {
		if !assigned[i] {
			pool = append(pool, i)
		}
	}
	return fixed, pool, nil
}

// costGroup orders members and prices the launch into the first-deployed
// satellite's orbit.
func (r *planRun) costGroup(members []int) (group, bool, error) {
	order, ok, err := r.oracle.Order(members)
	if err != nil || !ok {
		return group{}, false, err
	}
	first := order.Satellites[0]
	ascent := core.LaunchAscent(first.Inc(), r.cfg.LaunchLatitude, core.CircularVelocity(first.SMA()), 0)
	return group{members: members, order: order, launch: ascent.Min()}, true, nil
}

func (r *planRun) searchError(err error) error {
	if errors.Is(err, core.ErrBudgetExhausted) {
		return fmt.Errorf("%w: %w", ErrInfeasible, err)
	}
	return err
}

// verifyCoverage checks that groups assign each of n satellites exactly once.
func verifyCoverage(n int, groups []group) error {
	seen := make([]int, n)
	for _, g := range groups {
		if len(g.members) != len(g.order.Satellites) {
			return fmt.Errorf("%w: group of %d members ordered as %d satellites", ErrInvariantViolation, len(g.members), len(g.order.Satellites))
		}
		for _, m := range g.members {
			if m < 0 || m >= n {
				return fmt.Errorf("%w: satellite index %d out of range", ErrInvariantViolation, m)
			}
			seen[m]++
		}
	}
	for i, c := range seen {
		if c != 1 {
			return fmt.Errorf("%w: satellite %d assigned %d times", ErrInvariantViolation, i, c)
		}
	}
	return nil
}

func toGlobal(pool, local []int) []int {
	out := make([]int, len(local))
	for i, l := range local {
		out[i] = pool[l]
	}
	return out
}

// poolJoiner adapts the oracle, which speaks input indices, to the
// enumerator, which numbers the pool from zero.
type poolJoiner struct {
	oracle  *core.GroupOracle
	pool    []int
	scratch []int
}

func (j *poolJoiner) CanJoin(members []int, candidate int) (bool, error) {
	j.scratch = j.scratch[:0]
	for _, m := range members {
		j.scratch = append(j.scratch, j.pool[m])
	}
	return j.oracle.CanJoin(j.scratch, j.pool[candidate])
}
