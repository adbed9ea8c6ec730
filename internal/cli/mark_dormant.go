package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
	"stackup.dev/stackup/internal/runtime"
)

// newMarkDormantCmd creates the mark-dormant command
func newMarkDormantCmd() *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "mark-dormant [branch]",
		Short: "Exclude a branch from rebase-update passes",
		Long: `Exclude a branch from rebase-update passes while keeping it in the
dependency graph. Defaults to the current branch. --unset re-includes it.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				branchName := ""
				if len(args) > 0 {
					branchName = args[0]
				}
				return actions.MarkDormantAction(ctx, actions.MarkDormantOptions{
					BranchName: branchName,
					Unset:      unset,
				})
			})
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "include the branch in passes again")

	return cmd
}
