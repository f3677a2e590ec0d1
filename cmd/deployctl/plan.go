package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/constellation-deployment/internal/config"
	"github.com/signalsfoundry/constellation-deployment/internal/manifest"
	"github.com/signalsfoundry/constellation-deployment/internal/service"
	"github.com/signalsfoundry/constellation-deployment/kb"
)

func planCmd(root *rootOptions) *cobra.Command {
	var (
		format  string
		remote  string
		penalty float64
		timeout time.Duration
		workers int
	)

	c := &cobra.Command{
		Use:   "plan <manifest>",
		Short: "Plan every candidate of a manifest",
		Long: "Plan groups each candidate's satellites into launches, orders each launch's\n" +
			"deployment and prices it in delta-V. Planner limits come from DEPLOY_*\n" +
			"environment variables, overridden by the manifest.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (want table or json)", format)
			}
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			req := &service.PlanRequest{Manifest: m, Penalty: penalty}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var resp *service.PlanResponse
			if remote != "" {
				resp, err = planRemote(ctx, remote, req)
			} else {
				resp, err = planLocal(ctx, root, cmd, req, workers)
			}
			if err != nil {
				return statusMessage(err)
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return writePlanTables(cmd.OutOrStdout(), resp)
		},
	}

	c.Flags().StringVarP(&format, "format", "o", "table", "output format: table or json")
	c.Flags().StringVar(&remote, "remote", "", "plan on a planner server at this address instead of locally")
	c.Flags().Float64Var(&penalty, "penalty", 0, "objective reported for infeasible candidates")
	c.Flags().DurationVar(&timeout, "timeout", 0, "abort planning after this long (0 = no limit)")
	c.Flags().IntVar(&workers, "workers", 0, "candidates planned concurrently (0 = DEPLOY_WORKERS or GOMAXPROCS)")
	return c
}

func planLocal(ctx context.Context, root *rootOptions, cmd *cobra.Command, req *service.PlanRequest, workers int) (*service.PlanResponse, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}
	catalog := kb.DefaultCatalog()
	base, err := env.PlannerConfig(catalog)
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		base.Workers = workers
	}
	svc, err := service.NewPlannerService(base, root.logger(cmd), service.WithCatalog(catalog))
	if err != nil {
		return nil, err
	}
	return svc.Plan(ctx, req)
}

func planRemote(ctx context.Context, addr string, req *service.PlanRequest) (*service.PlanResponse, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	defer conn.Close()
	return service.NewClient(conn).Plan(ctx, req)
}

// statusMessage strips the gRPC envelope from errors shown to the user.
func statusMessage(err error) error {
	if st, ok := status.FromError(err); ok {
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
	return err
}
