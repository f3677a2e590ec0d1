package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryInterceptorRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("NewRPCCollector: %v", err)
	}

	interceptor := collector.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/deployment.v1.DeploymentPlanner/Plan"}

	_, err = interceptor(context.Background(), struct{}{}, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		time.Sleep(10 * time.Millisecond)
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("interceptor handler returned error: %v", err)
	}

	if got := testutil.ToFloat64(collector.RPCRequests.WithLabelValues("DeploymentPlanner", "Plan", "OK")); got != 1 {
		t.Fatalf("planner_rpc_requests_total = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "planner_rpc_request_duration_seconds", map[string]string{
		"service": "DeploymentPlanner",
		"method":  "Plan",
	}); count != 1 {
		t.Fatalf("planner_rpc_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestUnaryInterceptorRecordsErrorCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("NewRPCCollector: %v", err)
	}

	interceptor := collector.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	_, _ = interceptor(context.Background(), struct{}{}, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "boom")
	})

	if got := testutil.ToFloat64(collector.RPCRequests.WithLabelValues("Health", "Check", "InvalidArgument")); got != 1 {
		t.Fatalf("planner_rpc_requests_total error label = %v, want 1", got)
	}
}

func TestPlannerCollectorObservePlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("NewPlannerCollector: %v", err)
	}

	collector.ObservePlan("feasible", 3, 7, 20*time.Millisecond)
	collector.ObservePlan("infeasible", 0, 2, time.Millisecond)

	if got := testutil.ToFloat64(collector.PlansTotal.WithLabelValues("feasible")); got != 1 {
		t.Fatalf("feasible plans = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.PlansTotal.WithLabelValues("infeasible")); got != 1 {
		t.Fatalf("infeasible plans = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.PartitionsEvaluated); got != 9 {
		t.Fatalf("partitions evaluated = %v, want 9", got)
	}
	if count := histogramSampleCount(t, reg, "deployment_launches", nil); count != 1 {
		t.Fatalf("deployment_launches sample_count = %d, want 1 (infeasible plans are not observed)", count)
	}
	if count := histogramSampleCount(t, reg, "deployment_plan_duration_seconds", nil); count != 2 {
		t.Fatalf("deployment_plan_duration_seconds sample_count = %d, want 2", count)
	}

	collector.AddBatchInFlight(4)
	collector.AddBatchInFlight(-1)
	if got := testutil.ToFloat64(collector.BatchInFlight); got != 3 {
		t.Fatalf("in flight = %v, want 3", got)
	}
}

func TestCollectorsReuseRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("NewPlannerCollector: %v", err)
	}
	second, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("second NewPlannerCollector: %v", err)
	}
	first.ObservePlan("error", 0, 0, 0)
	if got := testutil.ToFloat64(second.PlansTotal.WithLabelValues("error")); got != 1 {
		t.Fatalf("second collector should share counters, got %v", got)
	}

	var nilCollector *PlannerCollector
	nilCollector.ObservePlan("feasible", 1, 1, time.Second)
	nilCollector.AddBatchInFlight(1)
}

func TestMetricsHandlerExposesPlannerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rpc, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("NewRPCCollector: %v", err)
	}
	planner, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("NewPlannerCollector: %v", err)
	}
	planner.ObservePlan("feasible", 2, 5, 10*time.Millisecond)
	rpc.RPCRequests.WithLabelValues("svc", "method", "OK").Inc()
	rpc.RPCDurations.WithLabelValues("svc", "method").Observe(0.01)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	rpc.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"planner_rpc_requests_total",
		"planner_rpc_request_duration_seconds",
		"deployment_plans_total",
		"deployment_plan_duration_seconds",
		"deployment_partitions_evaluated_total 5",
		"deployment_launches",
		"deployment_batch_in_flight",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}

func TestSplitMethod(t *testing.T) {
	cases := map[string][2]string{
		"":                                      {"unknown", "unknown"},
		"/deployment.v1.DeploymentPlanner/Plan": {"DeploymentPlanner", "Plan"},
		"Plan":                                  {"unknown", "unknown"},
		"/svc/":                                 {"svc", "unknown"},
	}
	for in, want := range cases {
		service, method := SplitMethod(in)
		if service != want[0] || method != want[1] {
			t.Errorf("SplitMethod(%q) = %q, %q; want %q, %q", in, service, method, want[0], want[1])
		}
	}
}

func TestTracingConfigFromEnv(t *testing.T) {
	t.Setenv("DEPLOY_TRACING_ENABLED", "true")
	t.Setenv("DEPLOY_TRACING_EXPORTER", "OTLP")
	t.Setenv("DEPLOY_TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := TracingConfigFromEnv()
	if err != nil {
		t.Fatalf("TracingConfigFromEnv: %v", err)
	}
	if !cfg.Enabled || cfg.Exporter != "otlp" || cfg.SampleRatio != 0.25 || cfg.ServiceName != "deployment-planner" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("DEPLOY_TRACING_SAMPLE_RATIO", "2")
	if _, err := TracingConfigFromEnv(); err == nil {
		t.Fatalf("expected error for out-of-range ratio")
	}
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{}, nil)
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	ShutdownWithTimeout(context.Background(), shutdown, nil)
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
