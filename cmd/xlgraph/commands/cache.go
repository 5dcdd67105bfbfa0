package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the cached dependency graph",
	}
	cmd.AddCommand(c.newCacheStatusCmd())
	cmd.AddCommand(c.newCacheRebuildCmd())
	cmd.AddCommand(c.newCacheClearCmd())
	return cmd
}

func (c *CLI) newCacheStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <workbook>",
		Short: "Show whether a cached graph exists and is current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.CacheStatus(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print the status as JSON")
	return cmd
}

func (c *CLI) newCacheRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild <workbook>",
		Short: "Drop the cached graph and build it again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CacheRebuild(cmd.Context(), buildOptions(cmd, args[0]))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <workbook>",
		Short: "Drop the cached graph of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CacheClear(cmd.Context(), args[0])
		},
	}
}
