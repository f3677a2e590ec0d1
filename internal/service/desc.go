package service

import (
	"context"

	"google.golang.org/grpc"
)

// Full method names of the planner service.
const (
	ServiceName           = "deployment.v1.DeploymentPlanner"
	PlanMethod            = "/" + ServiceName + "/Plan"
	ListLaunchSitesMethod = "/" + ServiceName + "/ListLaunchSites"
)

// PlannerServer is the server API of the planner service.
type PlannerServer interface {
	Plan(context.Context, *PlanRequest) (*PlanResponse, error)
	ListLaunchSites(context.Context, *ListLaunchSitesRequest) (*ListLaunchSitesResponse, error)
}

// RegisterPlannerServer registers srv on s.
func RegisterPlannerServer(s grpc.ServiceRegistrar, srv PlannerServer) {
	s.RegisterService(&plannerServiceDesc, srv)
}

var plannerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Plan", Handler: planHandler},
		{MethodName: "ListLaunchSites", Handler: listLaunchSitesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "deployment/v1/planner",
}

func planHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PlanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServer).Plan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PlanMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PlannerServer).Plan(ctx, req.(*PlanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listLaunchSitesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListLaunchSitesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServer).ListLaunchSites(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListLaunchSitesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PlannerServer).ListLaunchSites(ctx, req.(*ListLaunchSitesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the planner service over the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Plan calls DeploymentPlanner/Plan.
func (c *Client) Plan(ctx context.Context, in *PlanRequest, opts ...grpc.CallOption) (*PlanResponse, error) {
	out := new(PlanResponse)
	if err := c.cc.Invoke(ctx, PlanMethod, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLaunchSites calls DeploymentPlanner/ListLaunchSites.
func (c *Client) ListLaunchSites(ctx context.Context, opts ...grpc.CallOption) (*ListLaunchSitesResponse, error) {
	out := new(ListLaunchSitesResponse)
	if err := c.cc.Invoke(ctx, ListLaunchSitesMethod, &ListLaunchSitesRequest{}, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
