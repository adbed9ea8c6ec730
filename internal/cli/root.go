// Package cli wires the cobra command tree. Each command is a thin shell
// around an action in internal/actions.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stackup",
		Short: "Stackup keeps a stack of dependent git branches rebased on their upstreams",
		Long: `Stackup keeps a stack of dependent git branches rebased on their upstreams.

Each branch tracks either a remote reference or another local branch.
'stackup rebase-update' brings the whole stack up to date in one pass,
freezing your uncommitted work first and restoring it afterwards.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			tui.ConfigureColorProfile()
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newRebaseUpdateCmd())
	rootCmd.AddCommand(newNewBranchCmd())
	rootCmd.AddCommand(newFreezeCmd())
	rootCmd.AddCommand(newThawCmd())
	rootCmd.AddCommand(newSquashBranchCmd())
	rootCmd.AddCommand(newMapBranchesCmd())
	rootCmd.AddCommand(newReparentCmd())
	rootCmd.AddCommand(newMarkDormantCmd())

	return rootCmd
}
