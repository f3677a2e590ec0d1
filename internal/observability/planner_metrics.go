package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlannerCollector exposes deployment planning metrics. It satisfies the
// planner's MetricsRecorder interface.
type PlannerCollector struct {
	PlansTotal          *prometheus.CounterVec
	PlanDuration        prometheus.Histogram
	PartitionsEvaluated prometheus.Counter
	Launches            prometheus.Histogram
	BatchInFlight       prometheus.Gauge
}

// NewPlannerCollector registers planner metrics against the provided registerer.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deployment_plans_total",
		Help: "Deployment planning calls, labeled by outcome (feasible, infeasible, error).",
	}, []string{"outcome"})
	plans, err := registerCounterVec(reg, plans, "deployment_plans_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deployment_plan_duration_seconds",
		Help:    "Wall-clock duration of one deployment planning call.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}), "deployment_plan_duration_seconds")
	if err != nil {
		return nil, err
	}

	partitions, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deployment_partitions_evaluated_total",
		Help: "Feasible leftover partitions costed by the planner.",
	}), "deployment_partitions_evaluated_total")
	if err != nil {
		return nil, err
	}

	launches, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deployment_launches",
		Help:    "Number of launches in each feasible deployment strategy.",
		Buckets: prometheus.LinearBuckets(1, 1, 12),
	}), "deployment_launches")
	if err != nil {
		return nil, err
	}

	inFlight, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "deployment_batch_in_flight",
		Help: "Candidates currently being planned by batch workers.",
	}), "deployment_batch_in_flight")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		PlansTotal:          plans,
		PlanDuration:        duration,
		PartitionsEvaluated: partitions,
		Launches:            launches,
		BatchInFlight:       inFlight,
	}, nil
}

// ObservePlan records the outcome of one planning call. launches is only
// observed for feasible outcomes.
func (c *PlannerCollector) ObservePlan(outcome string, launches, partitions int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.PlansTotal.WithLabelValues(outcome).Inc()
	c.PlanDuration.Observe(elapsed.Seconds())
	c.PartitionsEvaluated.Add(float64(partitions))
	if outcome == "feasible" {
		c.Launches.Observe(float64(launches))
	}
}

// AddBatchInFlight moves the in-flight gauge by delta.
func (c *PlannerCollector) AddBatchInFlight(delta int) {
	if c == nil || c.BatchInFlight == nil {
		return
	}
	c.BatchInFlight.Add(float64(delta))
}
