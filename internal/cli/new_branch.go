package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
	"stackup.dev/stackup/internal/runtime"
)

// newNewBranchCmd creates the new-branch command
func newNewBranchCmd() *cobra.Command {
	var (
		upstream        string
		upstreamCurrent bool
		lkgr            bool
		injectCurrent   bool
	)

	cmd := &cobra.Command{
		Use:   "new-branch <name>",
		Short: "Create a tracked branch at its upstream's tip",
		Long: `Create a tracked branch at its upstream's tip, carrying any uncommitted
changes along.

By default the new branch tracks the repository's configured default
upstream. --upstream picks an explicit reference, --upstream_current stacks
on the current branch, --lkgr tracks the last-known-good ref, and
--inject_current inserts the new branch between the current branch and its
upstream.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.NewBranchAction(ctx, actions.NewBranchOptions{
					BranchName:      args[0],
					Upstream:        upstream,
					UpstreamCurrent: upstreamCurrent,
					Lkgr:            lkgr,
					InjectCurrent:   injectCurrent,
				})
			})
		},
	}

	cmd.Flags().StringVar(&upstream, "upstream", "", "upstream reference for the new branch")
	cmd.Flags().BoolVar(&upstreamCurrent, "upstream_current", false, "use the current branch as upstream")
	cmd.Flags().BoolVar(&lkgr, "lkgr", false, "use the last-known-good ref as upstream")
	cmd.Flags().BoolVar(&injectCurrent, "inject_current", false, "insert the new branch between the current branch and its upstream")
	cmd.MarkFlagsMutuallyExclusive("upstream", "upstream_current", "lkgr", "inject_current")
	_ = cmd.RegisterFlagCompletionFunc("upstream", helpers.CompleteBranches)

	return cmd
}
