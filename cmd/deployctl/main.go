// Command deployctl plans constellation deployments from manifest files.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/constellation-deployment/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	logLevel string
}

func (o *rootOptions) logger(cmd *cobra.Command) logging.Logger {
	return logging.New(logging.Config{
		Level:  o.logLevel,
		Format: "text",
		Output: cmd.ErrOrStderr(),
	})
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "deployctl",
		Short:        "Plan launches and tug deployments for constellation candidates",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(planCmd(opts), checkCmd(opts), propellantCmd(), sitesCmd())
	return cmd
}
