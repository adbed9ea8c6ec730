package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
	"stackup.dev/stackup/internal/runtime"
)

// newSquashBranchCmd creates the squash-branch command
func newSquashBranchCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "squash-branch",
		Short: "Collapse the current branch into a single commit over its base",
		Long: `Collapse the current branch into a single commit over its base marker.
Uncommitted work is frozen around the squash and restored afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.SquashBranchAction(ctx, actions.SquashBranchOptions{
					Message: message,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message for the squashed branch")

	return cmd
}
