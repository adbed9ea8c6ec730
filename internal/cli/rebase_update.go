package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
	"stackup.dev/stackup/internal/runtime"
)

// newRebaseUpdateCmd creates the rebase-update command
func newRebaseUpdateCmd() *cobra.Command {
	var (
		noFetch   bool
		keepGoing bool
		noSquash  bool
		current   bool
		tree      bool
	)

	cmd := &cobra.Command{
		Use:   "rebase-update [branch...]",
		Short: "Rebase every tracked branch onto its upstream, root to leaf",
		Long: `Rebase every tracked branch onto its upstream, root to leaf.

Uncommitted work is frozen before the pass and thawed afterwards. When a
rebase conflicts, the branch's squashed form is tried instead; if that also
conflicts the pass stops with the original rebase left open to resolve.
Rerunning the command resumes an interrupted pass. Branches left with no
commits of their own are deleted and their children reparented.`,
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.RebaseUpdateAction(ctx, actions.RebaseUpdateOptions{
					NoFetch:   noFetch,
					KeepGoing: keepGoing,
					NoSquash:  noSquash,
					Current:   current,
					Tree:      tree,
					Branches:  args,
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&noFetch, "no-fetch", "n", false, "skip fetching remotes")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "on conflict, skip the branch and continue with independent branches")
	cmd.Flags().BoolVar(&noSquash, "no-squash", false, "disable the squash fallback on conflict")
	cmd.Flags().BoolVar(&current, "current", false, "only rebase the currently checked-out branch")
	cmd.Flags().BoolVar(&tree, "tree", false, "also rebase every descendant of the selected branches")

	return cmd
}
