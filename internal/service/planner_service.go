// Package service exposes the deployment planner over gRPC.
package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/constellation-deployment/internal/logging"
	"github.com/signalsfoundry/constellation-deployment/kb"
	"github.com/signalsfoundry/constellation-deployment/model"
	"github.com/signalsfoundry/constellation-deployment/planner"
	"github.com/signalsfoundry/constellation-deployment/timectrl"
)

// Option customises a PlannerService.
type Option func(*PlannerService)

// WithMetricsRecorder forwards planning measurements to m.
func WithMetricsRecorder(m planner.MetricsRecorder) Option {
	return func(s *PlannerService) { s.metrics = m }
}

// WithCatalog sets the launch-site catalog used to resolve launch_site.
func WithCatalog(c *kb.Catalog) Option {
	return func(s *PlannerService) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithElementBounds sets the bounds satellites are checked against.
func WithElementBounds(b model.ElementBounds) Option {
	return func(s *PlannerService) { s.bounds = b }
}

// WithClock sets the clock used for TLE propagation and search deadlines.
func WithClock(c timectrl.Clock) Option {
	return func(s *PlannerService) {
		if c != nil {
			s.clock = c
		}
	}
}

// PlannerService implements PlannerServer. Each request may override the
// base configuration through its manifest.
type PlannerService struct {
	base    planner.Config
	catalog *kb.Catalog
	bounds  model.ElementBounds
	log     logging.Logger
	metrics planner.MetricsRecorder
	clock   timectrl.Clock
}

// NewPlannerService validates base and constructs the service.
func NewPlannerService(base planner.Config, log logging.Logger, opts ...Option) (*PlannerService, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Noop()
	}
	s := &PlannerService{
		base:    base,
		catalog: kb.DefaultCatalog(),
		bounds:  model.DefaultElementBounds(),
		log:     log,
		clock:   timectrl.System(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Plan plans every candidate of the request's manifest. Infeasible candidates
// are reported in the response with the request's penalty as objective; only
// bad requests, cancellation and internal defects fail the call.
func (s *PlannerService) Plan(ctx context.Context, req *PlanRequest) (*PlanResponse, error) {
	log := logging.FromContext(ctx, s.log).With(logging.String("operation", "plan"))

	if err := ValidatePlanRequest(req); err != nil {
		log.Warn(ctx, "rejected plan request", logging.Err(err))
		return nil, ToStatusError(err)
	}
	cfg, err := req.Manifest.Apply(s.base, s.catalog)
	if err != nil {
		return nil, ToStatusError(err)
	}
	resolved, err := req.Manifest.Resolve(s.bounds, s.clock.Now())
	if err != nil {
		return nil, ToStatusError(err)
	}
	p, err := planner.New(cfg, log,
		planner.WithMetricsRecorder(s.metrics),
		planner.WithClock(s.clock))
	if err != nil {
		return nil, ToStatusError(err)
	}

	candidates := make([][]model.Satellite, len(resolved))
	for i, r := range resolved {
		candidates[i] = r.Satellites
	}

	ctx, span := startChildSpan(ctx, "planner.Batch", attribute.Int("deployment.candidates", len(candidates)))
	results, err := p.PlanBatch(ctx, candidates)
	span.End()
	if err != nil {
		return nil, ToStatusError(err)
	}

	resp := &PlanResponse{Candidates: make([]CandidatePlan, 0, len(results))}
	feasible := 0
	for i, r := range results {
		objective, err := planner.Objective(r.Strategy, r.Err, req.Penalty)
		if err != nil {
			log.Error(ctx, "planning failed",
				logging.String("candidate", resolved[i].Name),
				logging.Err(err))
			return nil, ToStatusError(err)
		}
		if r.Err != nil {
			resp.Candidates = append(resp.Candidates, CandidatePlan{
				Name:      resolved[i].Name,
				Error:     r.Err.Error(),
				Objective: objective,
			})
			continue
		}
		feasible++
		resp.Candidates = append(resp.Candidates, newCandidatePlan(resolved[i].Name, r.Strategy))
	}

	log.Info(ctx, "planned candidates",
		logging.Int("candidates", len(results)),
		logging.Int("feasible", feasible))
	return resp, nil
}

// ListLaunchSites returns the launch-site catalog.
func (s *PlannerService) ListLaunchSites(ctx context.Context, _ *ListLaunchSitesRequest) (*ListLaunchSitesResponse, error) {
	return &ListLaunchSitesResponse{Sites: s.catalog.ListLaunchSites()}, nil
}
