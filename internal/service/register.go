package service

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Register installs the planner and health services on s and marks the
// planner as serving. The returned health server lets callers flip the
// status during shutdown.
func Register(s *grpc.Server, planner PlannerServer) *health.Server {
	RegisterPlannerServer(s, planner)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return hs
}
