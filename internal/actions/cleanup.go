package actions

import (
	"context"
	"fmt"

	"stackup.dev/stackup/internal/engine"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
)

// cleanBranches removes branches left with no commits of their own after a
// rebase pass: every commit they had has landed upstream. Children of a
// removed branch are reparented onto its upstream and their base markers
// recomputed there. Returns the names of the deleted branches.
func cleanBranches(rt *runtime.Context, processed []string) ([]string, error) {
	ctx := rt.Context
	eng := rt.Engine

	var deleted []string
	for _, name := range processed {
		branch, err := eng.Store().Get(ctx, name)
		if err != nil {
			// Already reparented away or untracked by hand mid-pass.
			continue
		}

		empty, err := eng.IsBranchEmpty(ctx, branch)
		if err != nil {
			return deleted, err
		}
		if !empty {
			continue
		}

		if err := deleteAndReparent(ctx, rt, branch); err != nil {
			return deleted, err
		}
		rt.Splog.Info("Deleted %s (all of its commits landed upstream).", name)
		deleted = append(deleted, name)
	}
	return deleted, nil
}

func deleteAndReparent(ctx context.Context, rt *runtime.Context, branch engine.Branch) error {
	eng := rt.Engine

	all, err := eng.Store().ListAll(ctx)
	if err != nil {
		return err
	}
	for _, child := range engine.Children(all, branch.Name) {
		child.Upstream = branch.Upstream
		newBase, err := eng.ComputeInitialBase(ctx, child.Name, child.Upstream)
		if err != nil {
			return fmt.Errorf("failed to reparent %s onto %s: %w", child.Name, branch.Upstream, err)
		}
		child.Base = newBase
		if err := eng.Store().Set(ctx, child); err != nil {
			return err
		}
		rt.Splog.Info("Reparented %s onto %s.", child.Name, branch.Upstream)
	}

	// Move off the branch before deleting it out from under HEAD.
	currentBranch, err := git.GetCurrentBranch()
	if err == nil && currentBranch == branch.Name {
		if err := git.CheckoutBranch(ctx, branch.Upstream); err != nil {
			return err
		}
	}

	if err := git.DeleteBranch(ctx, branch.Name); err != nil {
		return err
	}
	return eng.Store().Delete(ctx, branch.Name)
}
