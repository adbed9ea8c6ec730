package git

import (
	"context"
	"fmt"
	"os"
)

// RebaseResult represents the result of a rebase or patch-apply attempt
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

// RebaseOnto replays the commits in from..branchName onto the given revision.
// The rebase runs with the branch itself checked out, so that a conflicted
// rebase left open for the user updates the branch ref when they run
// `git rebase --continue`. On a clean run the original checkout is restored.
func RebaseOnto(ctx context.Context, branchName, onto, from string) (RebaseResult, error) {
	currentBranch, err := GetCurrentBranch()
	var currentRev string
	if err != nil {
		currentBranch = ""
		currentRev, _ = RunGitCommandWithContext(ctx, "rev-parse", "HEAD")
	}

	_, err = RunGitCommandWithContext(ctx, "rebase", "--onto", onto, from, branchName)
	if err != nil {
		if IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		// Rebase failed without leaving conflict state; restore the checkout.
		_, _ = RunGitCommandWithContext(ctx, "rebase", "--abort")
		restoreCheckout(ctx, currentBranch, currentRev)
		return RebaseConflict, nil
	}

	restoreCheckout(ctx, currentBranch, currentRev)
	return RebaseDone, nil
}

func restoreCheckout(ctx context.Context, branchName, rev string) {
	if branchName != "" {
		if err := CheckoutBranch(ctx, branchName); err != nil {
			_ = CheckoutDetached(ctx, branchName)
		}
	} else if rev != "" {
		_ = CheckoutDetached(ctx, rev)
	}
}

// IsRebaseInProgress checks if a rebase is currently in progress
func IsRebaseInProgress(ctx context.Context) bool {
	// Check for .git/rebase-merge or .git/rebase-apply directories. This is
	// more reliable than REBASE_HEAD which can persist after a rebase.
	gitDir, err := RunGitCommandWithContext(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return false
	}

	if _, err := os.Stat(gitDir + "/rebase-merge"); err == nil {
		return true
	}
	if _, err := os.Stat(gitDir + "/rebase-apply"); err == nil {
		return true
	}
	return false
}

// RebaseAbort aborts an in-progress rebase
func RebaseAbort(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}
