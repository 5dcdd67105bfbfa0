package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/xlgraph/internal/app"
)

func (c *CLI) newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <workbook> <cell>",
		Short: "Print the precedents and dependents of a cell",
		Long: `Print the dependency tree of a cell.

The cell must name its sheet, for example Sheet1!B2 or 'Q1 Sales'!$C$4.
Direction and mode default to the values in xlgraph.yaml.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, _ := cmd.Flags().GetString("direction")
			mode, _ := cmd.Flags().GetString("mode")
			depth, _ := cmd.Flags().GetInt("depth")
			asJSON, _ := cmd.Flags().GetBool("json")

			return c.app.Trace(cmd.Context(), app.TraceOptions{
				Workbook:  args[0],
				Cell:      args[1],
				Direction: direction,
				Mode:      mode,
				Depth:     depth,
				JSON:      asJSON,
			})
		},
	}
	cmd.Flags().StringP("direction", "d", "", "Trace direction: precedents, dependents or both")
	cmd.Flags().StringP("mode", "m", "", "Traversal mode: full_graph or on_demand")
	cmd.Flags().IntP("depth", "n", -1, "Maximum depth, negative for the configured default")
	cmd.Flags().Bool("json", false, "Print the tree as JSON")
	return cmd
}
