package cli

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/cli/helpers"
)

// newMapBranchesCmd creates the map-branches command
func newMapBranchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map-branches",
		Short: "Show the branch dependency graph as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.MapBranchesAction)
		},
	}
}
