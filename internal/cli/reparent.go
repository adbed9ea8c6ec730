package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
	"stackup.dev/stackup/internal/runtime"
)

// newReparentCmd creates the reparent command
func newReparentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reparent <new-upstream>",
		Short: "Move the current branch under a new upstream",
		Long: `Move the current branch under a new upstream: its commits are rebased
onto the new upstream's tip and its graph entry rewritten.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.ReparentAction(ctx, actions.ReparentOptions{
					NewUpstream: args[0],
				})
			})
		},
	}
}
