package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
)

// newFreezeCmd creates the freeze command
func newFreezeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freeze",
		Short: "Snapshot uncommitted work into marker commits",
		Long: `Snapshot uncommitted work into marker commits on the current branch:
one for the staged changes, one for everything else. 'stackup thaw'
restores the exact staged/unstaged split.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.FreezeAction)
		},
	}
}

// newThawCmd creates the thaw command
func newThawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thaw",
		Short: "Restore the most recent freeze snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.ThawAction)
		},
	}
}
