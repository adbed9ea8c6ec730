package actions

import (
	"fmt"

	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
)

// currentBranchOrRev returns the current branch name, or the resolved HEAD
// revision when detached. The second return is true when HEAD is on a branch.
func currentBranchOrRev() (string, bool, error) {
	branchName, err := git.GetCurrentBranch()
	if err == nil {
		return branchName, true, nil
	}

	rev, revErr := git.GetRevision("HEAD")
	if revErr != nil {
		return "", false, fmt.Errorf("failed to resolve HEAD: %w", revErr)
	}
	return rev, false, nil
}

// requireTrackedCurrentBranch returns the graph entry for the currently
// checked-out branch, failing when HEAD is detached or the branch is not
// tracked.
func requireTrackedCurrentBranch(rt *runtime.Context) (string, error) {
	branchName, err := git.GetCurrentBranch()
	if err != nil {
		return "", err
	}

	tracked, err := rt.Engine.Store().IsTracked(rt.Context, branchName)
	if err != nil {
		return "", err
	}
	if !tracked {
		return "", fmt.Errorf("%s has no upstream configured; use 'stackup new-branch' or 'stackup reparent' to track it: %w",
			branchName, stackuperrors.ErrBranchNotTracked)
	}
	return branchName, nil
}
