package git

import (
	"context"
	"fmt"
)

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branchName, err)
	}
	return nil
}

// CheckoutDetached checks out a revision in detached HEAD state
func CheckoutDetached(ctx context.Context, revision string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", "--detach", revision)
	if err != nil {
		return fmt.Errorf("failed to checkout %s detached: %w", revision, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates a new branch at the given start point and
// checks it out, carrying any uncommitted changes along. An empty start point
// creates the branch at HEAD.
func CreateAndCheckoutBranch(ctx context.Context, branchName, startPoint string) error {
	args := []string{"checkout", "-b", branchName}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch
func DeleteBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "branch", "-D", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// UpdateBranchRef points a branch ref at a revision without touching the
// working tree
func UpdateBranchRef(ctx context.Context, branchName, revision string) error {
	_, err := RunGitCommandWithContext(ctx, "update-ref", "refs/heads/"+branchName, revision)
	if err != nil {
		return fmt.Errorf("failed to update branch reference %s: %w", branchName, err)
	}
	return nil
}

// ResetBranchToRevision points a branch at a revision. When the branch is
// the current checkout the working tree moves with it; update-ref alone
// would leave the tree stale.
func ResetBranchToRevision(ctx context.Context, branchName, revision string) error {
	currentBranch, err := GetCurrentBranch()
	if err == nil && currentBranch == branchName {
		return HardReset(ctx, revision)
	}
	return UpdateBranchRef(ctx, branchName, revision)
}

// HardReset resets the current branch and working tree to a revision
func HardReset(ctx context.Context, revision string) error {
	_, err := RunGitCommandWithContext(ctx, "reset", "--hard", revision)
	return err
}

// SoftReset moves the current branch to a revision, leaving the index and
// working tree untouched
func SoftReset(ctx context.Context, revision string) error {
	_, err := RunGitCommandWithContext(ctx, "reset", "--soft", revision)
	return err
}

// MixedReset moves the current branch to a revision and resets the index,
// leaving the working tree untouched
func MixedReset(ctx context.Context, revision string) error {
	_, err := RunGitCommandWithContext(ctx, "reset", "--mixed", revision)
	return err
}

// CherryPick replays the given commits onto the current HEAD
func CherryPick(ctx context.Context, revisions ...string) error {
	args := append([]string{"cherry-pick"}, revisions...)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to cherry-pick %v: %w", revisions, err)
	}
	return nil
}
