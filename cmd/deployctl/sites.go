package main

import (
	"github.com/spf13/cobra"

	"github.com/signalsfoundry/constellation-deployment/kb"
)

func sitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List known launch sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSitesTable(cmd.OutOrStdout(), kb.DefaultCatalog().ListLaunchSites())
		},
	}
}
