package actions

import (
	"stackup.dev/stackup/internal/runtime"
)

// MarkDormantOptions contains options for the mark-dormant command
type MarkDormantOptions struct {
	// BranchName is the branch to mark; empty means the current branch.
	BranchName string

	// Unset wakes the branch up again.
	Unset bool
}

// MarkDormantAction toggles a branch's dormant flag, excluding it from (or
// re-including it in) automated rebase passes
func MarkDormantAction(rt *runtime.Context, opts MarkDormantOptions) error {
	ctx := rt.Context
	eng := rt.Engine

	branchName := opts.BranchName
	if branchName == "" {
		name, err := requireTrackedCurrentBranch(rt)
		if err != nil {
			return err
		}
		branchName = name
	}

	branch, err := eng.Store().Get(ctx, branchName)
	if err != nil {
		return err
	}

	branch.Dormant = !opts.Unset
	if err := eng.Store().Set(ctx, branch); err != nil {
		return err
	}

	if opts.Unset {
		rt.Splog.Info("%s will be included in rebase-update passes again.", branchName)
	} else {
		rt.Splog.Info("%s is now dormant; rebase-update will skip it.", branchName)
	}
	return nil
}
