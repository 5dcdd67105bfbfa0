package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/xlgraph/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <workbook>",
		Short: "Keep the cached graph current while the workbook changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("metrics-addr")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Workbook:    args[0],
				MetricsAddr: addr,
			})
		},
	}
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")
	return cmd
}
