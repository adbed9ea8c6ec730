package actions

import (
	"fmt"

	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
)

// ReparentOptions contains options for the reparent command
type ReparentOptions struct {
	NewUpstream string
}

// ReparentAction moves the current branch under a new upstream: its commits
// are rebased onto the new upstream's tip and the graph entry rewritten.
func ReparentAction(rt *runtime.Context, opts ReparentOptions) error {
	ctx := rt.Context
	eng := rt.Engine
	splog := rt.Splog

	if git.IsRebaseInProgress(ctx) {
		return fmt.Errorf("cannot reparent while a rebase is in progress")
	}

	branchName, err := requireTrackedCurrentBranch(rt)
	if err != nil {
		return err
	}
	branch, err := eng.Store().Get(ctx, branchName)
	if err != nil {
		return err
	}

	if opts.NewUpstream == branch.Upstream {
		splog.Info("%s already tracks %s.", branchName, opts.NewUpstream)
		return nil
	}
	if err := eng.CheckUpstream(ctx, branchName, opts.NewUpstream); err != nil {
		return err
	}
	parentTip, err := git.GetRevision(opts.NewUpstream)
	if err != nil {
		return fmt.Errorf("upstream %s does not resolve to a commit: %w", opts.NewUpstream, err)
	}

	base, err := eng.BaseOrInitial(ctx, branch)
	if err != nil {
		return err
	}

	frozen, err := Freeze(rt)
	if err != nil {
		return err
	}

	if base != parentTip {
		result, err := git.RebaseOnto(ctx, branchName, parentTip, base)
		if err != nil {
			return err
		}
		if result == git.RebaseConflict {
			if git.IsRebaseInProgress(ctx) {
				if err := git.RebaseAbort(ctx); err != nil {
					return err
				}
			}
			if frozen {
				if err := Thaw(rt); err != nil {
					splog.Warn("failed to thaw: %v", err)
				}
			}
			return fmt.Errorf("rebasing %s onto %s hit a conflict; reparent aborted", branchName, opts.NewUpstream)
		}
	}

	branch.Upstream = opts.NewUpstream
	branch.Base = parentTip
	if err := eng.Store().Set(ctx, branch); err != nil {
		return err
	}

	if frozen {
		if err := Thaw(rt); err != nil {
			splog.Warn("failed to thaw: %v", err)
		}
	}

	splog.Info("%s now tracks %s.", branchName, opts.NewUpstream)
	return nil
}
