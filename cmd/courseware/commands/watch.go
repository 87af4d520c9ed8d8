package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/courseware/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch every collection for changes",
		Long: "Loads every collection, then shows background refreshes and live updates " +
			"until interrupted. The dashboard is used on a terminal; CI and pipes get one line per event.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				OutputMode:  output,
				MetricsAddr: metricsAddr,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "auto", "Renderer: auto, tui or linear")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}
