package commands

import (
	"github.com/spf13/cobra"

	"github.com/nodalhq/nodal/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [targets...]",
		Short: "Evaluate the given targets and re-evaluate on source file changes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			scene, _ := cmd.Flags().GetString("scene")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.app.Watch(cmd.Context(), scene, args, app.RunOptions{
				NoCache: noCache,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Invalidate the stage cache before evaluating")
	return cmd
}
