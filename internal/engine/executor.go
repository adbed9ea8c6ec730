package engine

import (
	"context"
	"fmt"
	"strings"

	"stackup.dev/stackup/internal/git"
)

// RebaseBranch brings one branch up to date with its upstream: it replays
// the branch's own commits, the range from its base marker to its tip,
// onto the current upstream tip. On conflict it retries with the branch
// squashed to a single commit, which succeeds when the branch's content
// already landed upstream in squashed form. On a clean result the base
// marker is refreshed to the new attachment point.
func (e *Engine) RebaseBranch(ctx context.Context, branch Branch, opts RebaseOptions) (RebaseBranchResult, error) {
	parentTip, err := git.GetRevision(branch.Upstream)
	if err != nil {
		return RebaseBranchResult{}, fmt.Errorf("failed to resolve upstream %s of %s: %w", branch.Upstream, branch.Name, err)
	}

	base, err := e.BaseOrInitial(ctx, branch)
	if err != nil {
		return RebaseBranchResult{}, err
	}

	tip, err := git.GetRevision(branch.Name)
	if err != nil {
		return RebaseBranchResult{}, err
	}

	if parentTip == base {
		// Upstream has not moved since the branch was attached.
		return RebaseBranchResult{Outcome: RebaseUpToDate, NewBase: base}, nil
	}

	if ancestor, err := git.IsAncestor(parentTip, tip); err != nil {
		return RebaseBranchResult{}, err
	} else if ancestor {
		// The branch already sits on the new upstream tip (e.g. rebased by
		// hand); only the marker needs to catch up.
		if err := e.RefreshBase(ctx, branch.Name, parentTip); err != nil {
			return RebaseBranchResult{}, err
		}
		return RebaseBranchResult{Outcome: RebaseUpToDate, NewBase: parentTip}, nil
	}

	result, err := git.RebaseOnto(ctx, branch.Name, parentTip, base)
	if err != nil {
		return RebaseBranchResult{}, err
	}
	if result == git.RebaseDone {
		if err := e.RefreshBase(ctx, branch.Name, parentTip); err != nil {
			return RebaseBranchResult{}, err
		}
		return RebaseBranchResult{Outcome: RebaseDone, NewBase: parentTip}, nil
	}

	if opts.NoSquash {
		// The conflicted rebase stays open for the user.
		return RebaseBranchResult{Outcome: RebaseConflicted}, nil
	}

	// Put the original attempt aside and try the squashed form.
	if git.IsRebaseInProgress(ctx) {
		if err := git.RebaseAbort(ctx); err != nil {
			return RebaseBranchResult{}, err
		}
	}
	return e.squashRetry(ctx, branch, base, tip, parentTip)
}

// squashRetry collapses base..tip into a single patch and applies it onto
// the new upstream tip. A clean apply becomes the branch's new single-commit
// state; a failed apply reopens the original conflicted rebase so the user
// resolves the structured attempt, not the squashed one.
func (e *Engine) squashRetry(ctx context.Context, branch Branch, base, tip, parentTip string) (RebaseBranchResult, error) {
	patch, err := git.DiffAsSquash(ctx, base, tip)
	if err != nil {
		return RebaseBranchResult{}, err
	}

	if strings.TrimSpace(patch) == "" {
		// Everything the branch had already landed upstream.
		if err := git.ResetBranchToRevision(ctx, branch.Name, parentTip); err != nil {
			return RebaseBranchResult{}, err
		}
		if err := e.RefreshBase(ctx, branch.Name, parentTip); err != nil {
			return RebaseBranchResult{}, err
		}
		return RebaseBranchResult{Outcome: RebaseSquashed, NewBase: parentTip, SquashAttempted: true}, nil
	}

	currentBranch, err := git.GetCurrentBranch()
	var currentRev string
	if err != nil {
		currentBranch = ""
		currentRev, _ = git.RunGitCommandWithContext(ctx, "rev-parse", "HEAD")
	}

	if err := git.CheckoutDetached(ctx, parentTip); err != nil {
		return RebaseBranchResult{}, err
	}

	applied, err := git.ApplyPatchToIndex(ctx, patch)
	if err != nil {
		return RebaseBranchResult{}, err
	}
	if applied == git.ApplyConflict {
		restoreCheckout(ctx, currentBranch, currentRev)
		// Reopen the structured rebase so the conflict the user sees matches
		// the branch's real commits.
		if _, err := git.RebaseOnto(ctx, branch.Name, parentTip, base); err != nil {
			return RebaseBranchResult{}, err
		}
		return RebaseBranchResult{Outcome: RebaseConflicted, SquashAttempted: true}, nil
	}

	residual, err := git.HasStagedChanges(ctx)
	if err != nil {
		return RebaseBranchResult{}, err
	}
	if !residual {
		// The three-way apply resolved to nothing: the branch's content is
		// already in the upstream tip.
		if err := git.UpdateBranchRef(ctx, branch.Name, parentTip); err != nil {
			return RebaseBranchResult{}, err
		}
		restoreCheckout(ctx, currentBranch, currentRev)
		if err := e.RefreshBase(ctx, branch.Name, parentTip); err != nil {
			return RebaseBranchResult{}, err
		}
		return RebaseBranchResult{Outcome: RebaseSquashed, NewBase: parentTip, SquashAttempted: true}, nil
	}

	message, err := e.squashMessage(branch.Name, base, tip)
	if err != nil {
		return RebaseBranchResult{}, err
	}
	if err := git.Commit(ctx, message); err != nil {
		return RebaseBranchResult{}, err
	}

	newRev, err := git.RunGitCommandWithContext(ctx, "rev-parse", "HEAD")
	if err != nil {
		return RebaseBranchResult{}, err
	}
	if err := git.UpdateBranchRef(ctx, branch.Name, newRev); err != nil {
		return RebaseBranchResult{}, err
	}

	restoreCheckout(ctx, currentBranch, currentRev)

	if err := e.RefreshBase(ctx, branch.Name, parentTip); err != nil {
		return RebaseBranchResult{}, err
	}
	return RebaseBranchResult{Outcome: RebaseSquashed, NewBase: parentTip, SquashAttempted: true}, nil
}

func (e *Engine) squashMessage(branchName, base, tip string) (string, error) {
	subjects, err := git.GetCommitRangeSubjects(base, tip)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Squash rebase of %s.", branchName)
	if len(subjects) > 0 {
		b.WriteString("\n")
		for _, subject := range subjects {
			fmt.Fprintf(&b, "\n%s", subject)
		}
	}
	return b.String(), nil
}

func restoreCheckout(ctx context.Context, branchName, rev string) {
	if branchName != "" {
		if err := git.CheckoutBranch(ctx, branchName); err != nil {
			_ = git.CheckoutDetached(ctx, branchName)
		}
	} else if rev != "" {
		_ = git.CheckoutDetached(ctx, rev)
	}
}

// IsBranchEmpty reports whether a branch has no commits of its own relative
// to its base marker.
func (e *Engine) IsBranchEmpty(ctx context.Context, branch Branch) (bool, error) {
	base, err := e.BaseOrInitial(ctx, branch)
	if err != nil {
		return false, err
	}
	shas, err := git.GetCommitRangeSHAs(base, branch.Name)
	if err != nil {
		return false, err
	}
	return len(shas) == 0, nil
}
