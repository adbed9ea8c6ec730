package engine

import (
	"context"
	"fmt"

	"stackup.dev/stackup/internal/git"
)

// Base markers are deliberately sticky: they are computed once at creation
// (or reparenting) and thereafter only moved by a successful rebase. They
// are never re-derived from a live ancestor search on read, so an upstream
// history rewrite cannot silently change what counts as a branch's own work.

// ComputeInitialBase returns the lowest common ancestor of a branch and its
// upstream, the marker for where the branch's own commits begin.
func (e *Engine) ComputeInitialBase(ctx context.Context, branchName, upstream string) (string, error) {
	base, err := git.GetMergeBase(branchName, upstream)
	if err != nil {
		return "", fmt.Errorf("failed to compute base of %s against %s: %w", branchName, upstream, err)
	}
	return base, nil
}

// RefreshBase records a branch's new attachment point after a successful
// rebase: the upstream tip its rebased commits now sit on.
func (e *Engine) RefreshBase(ctx context.Context, branchName, attachmentPoint string) error {
	branch, err := e.store.Get(ctx, branchName)
	if err != nil {
		return err
	}
	branch.Base = attachmentPoint
	return e.store.Set(ctx, branch)
}

// BaseOrInitial returns the branch's recorded base marker, computing and
// recording the initial one for entries that predate base tracking.
func (e *Engine) BaseOrInitial(ctx context.Context, branch Branch) (string, error) {
	if branch.Base != "" {
		return branch.Base, nil
	}

	base, err := e.ComputeInitialBase(ctx, branch.Name, branch.Upstream)
	if err != nil {
		return "", err
	}
	branch.Base = base
	if err := e.store.Set(ctx, branch); err != nil {
		return "", err
	}
	return base, nil
}
