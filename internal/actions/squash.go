package actions

import (
	"fmt"
	"strings"

	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
	"stackup.dev/stackup/internal/tui"
	"stackup.dev/stackup/internal/utils"
)

// SquashBranchOptions contains options for the squash-branch command
type SquashBranchOptions struct {
	// Message is the squash commit message; empty prompts interactively,
	// falling back to a generated one.
	Message string
}

// SquashBranchAction collapses the current branch's commits into a single
// commit sitting on its base marker. Uncommitted work is frozen first and
// thawed afterwards, so it stays out of the squash commit.
func SquashBranchAction(rt *runtime.Context, opts SquashBranchOptions) error {
	ctx := rt.Context
	eng := rt.Engine
	splog := rt.Splog

	if git.IsRebaseInProgress(ctx) {
		return fmt.Errorf("cannot squash while a rebase is in progress")
	}

	branchName, err := requireTrackedCurrentBranch(rt)
	if err != nil {
		return err
	}
	branch, err := eng.Store().Get(ctx, branchName)
	if err != nil {
		return err
	}
	base, err := eng.BaseOrInitial(ctx, branch)
	if err != nil {
		return err
	}

	frozen, err := Freeze(rt)
	if err != nil {
		return err
	}

	// The freeze markers ride at the tip; the squash covers only what sits
	// underneath them.
	markers, tip, err := freezeMarkersAtTip("HEAD")
	if err != nil {
		return err
	}

	empty, err := git.IsDiffEmpty(ctx, base, tip)
	if err != nil {
		return err
	}
	if empty {
		if frozen {
			if err := Thaw(rt); err != nil {
				return err
			}
		}
		splog.Info("Nothing to squash; %s has no changes over its base.", branchName)
		return nil
	}

	message := opts.Message
	if message == "" {
		fallback := fmt.Sprintf("Squashed branch %s.", branchName)
		if utils.IsInteractive() {
			answer, err := tui.PromptInput("Commit message for the squashed branch:", fallback)
			if err == nil && strings.TrimSpace(answer) != "" {
				message = answer
			}
		}
		if message == "" {
			message = fallback
		}
	}

	if frozen {
		// Drop the markers from the branch; the commits stay reachable by
		// hash and come back after the squash.
		if err := git.HardReset(ctx, tip); err != nil {
			return err
		}
	}

	if err := git.SoftReset(ctx, base); err != nil {
		return err
	}
	if err := git.Commit(ctx, message); err != nil {
		return err
	}

	if frozen {
		// Replay oldest-first; the squash commit's tree matches the markers'
		// original parent tree, so these apply cleanly.
		for i := len(markers) - 1; i >= 0; i-- {
			if err := git.CherryPick(ctx, markers[i]); err != nil {
				return err
			}
		}
		if err := Thaw(rt); err != nil {
			return err
		}
	}

	splog.Info("Squashed %s into one commit.", branchName)
	return nil
}
