package actions

import (
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
	"stackup.dev/stackup/internal/tui"
)

// MapBranchesAction renders the branch dependency graph as a tree
func MapBranchesAction(rt *runtime.Context) error {
	branches, err := rt.Engine.Store().ListAll(rt.Context)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		rt.Splog.Info("No tracked branches. Create one with 'stackup new-branch'.")
		return nil
	}

	currentBranch, err := git.GetCurrentBranch()
	if err != nil {
		currentBranch = ""
	}

	rt.Splog.Page(tui.RenderBranchTree(branches, currentBranch))
	return nil
}
