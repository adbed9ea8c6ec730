// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"github.com/spf13/cobra"

	"stackup.dev/stackup/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution
// function. The --verbose persistent flag is applied to the context's log.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()

	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil {
		ctx.Splog.SetVerbose(verbose)
	}
	return fn(ctx)
}
