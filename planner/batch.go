package planner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/signalsfoundry/constellation-deployment/internal/logging"
	"github.com/signalsfoundry/constellation-deployment/model"
)

// Result is the outcome of planning one candidate.
type Result struct {
	Strategy model.DeploymentStrategy
	Err      error
}

// PlanBatch plans every candidate with at most Config.Workers concurrent
// calls. results[i] belongs to candidates[i]; a failure on one candidate
// never stops the others. If ctx is done when the batch finishes, its error
// is returned as well; candidates that were not started carry it too.
func (p *Planner) PlanBatch(ctx context.Context, candidates [][]model.Satellite) ([]Result, error) {
	results := make([]Result, len(candidates))

	var g errgroup.Group
	g.SetLimit(p.cfg.workers())
	for i, sats := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			if p.metrics != nil {
				p.metrics.AddBatchInFlight(1)
				defer p.metrics.AddBatchInFlight(-1)
			}
			results[i].Strategy, results[i].Err = p.Plan(ctx, sats)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		p.log.Warn(ctx, "deployment batch interrupted",
			logging.Int("candidates", len(candidates)),
			logging.Err(err))
		return results, err
	}
	return results, nil
}
