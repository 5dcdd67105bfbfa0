package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/xlgraph/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <workbook>",
		Short: "Build and cache the full dependency graph of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), buildOptions(cmd, args[0]))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, linear or quiet")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	cmd.Flags().Bool("json", false, "Print the build report as JSON")
}

func buildOptions(cmd *cobra.Command, workbook string) app.BuildOptions {
	outputMode, _ := cmd.Flags().GetString("output-mode")
	ci, _ := cmd.Flags().GetBool("ci")
	asJSON, _ := cmd.Flags().GetBool("json")

	if ci {
		outputMode = "linear"
	}

	return app.BuildOptions{
		Workbook:   workbook,
		OutputMode: outputMode,
		JSON:       asJSON,
	}
}
