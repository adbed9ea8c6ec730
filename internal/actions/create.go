package actions

import (
	"fmt"

	"stackup.dev/stackup/internal/config"
	"stackup.dev/stackup/internal/engine"
	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
	"stackup.dev/stackup/internal/utils"
)

// NewBranchOptions contains options for the new-branch command
type NewBranchOptions struct {
	BranchName string

	// Upstream is an explicit upstream reference; empty means use the
	// repository's configured default.
	Upstream string

	// UpstreamCurrent makes the current branch the new branch's upstream.
	UpstreamCurrent bool

	// Lkgr uses the repository's last-known-good-revision ref as upstream.
	Lkgr bool

	// InjectCurrent inserts the new branch between the current branch and
	// its upstream.
	InjectCurrent bool
}

// NewBranchAction creates a tracked branch under the selected upstream
// policy, checks it out at the upstream's tip (carrying any uncommitted
// changes along) and records its base marker.
func NewBranchAction(rt *runtime.Context, opts NewBranchOptions) error {
	ctx := rt.Context
	eng := rt.Engine
	splog := rt.Splog

	if err := utils.ValidateBranchName(opts.BranchName); err != nil {
		return err
	}
	if git.BranchExists(opts.BranchName) {
		return fmt.Errorf("branch %s already exists", opts.BranchName)
	}

	policies := 0
	if opts.Upstream != "" {
		policies++
	}
	if opts.UpstreamCurrent {
		policies++
	}
	if opts.Lkgr {
		policies++
	}
	if opts.InjectCurrent {
		policies++
	}
	if policies > 1 {
		return stackuperrors.ErrConflictingCreationFlags
	}

	// Everything below mutates the repository; resolve the upstream first so
	// a bad policy leaves no trace.
	var upstream string
	var injectedBranch engine.Branch
	switch {
	case opts.Upstream != "":
		upstream = opts.Upstream
	case opts.UpstreamCurrent:
		currentBranch, err := git.GetCurrentBranch()
		if err != nil {
			return err
		}
		upstream = currentBranch
	case opts.Lkgr:
		ref, err := config.LkgrRef(ctx)
		if err != nil {
			return err
		}
		upstream = ref
	case opts.InjectCurrent:
		currentBranch, err := requireTrackedCurrentBranch(rt)
		if err != nil {
			return err
		}
		injectedBranch, err = eng.Store().Get(ctx, currentBranch)
		if err != nil {
			return err
		}
		upstream = injectedBranch.Upstream
	default:
		ref, err := config.DefaultUpstream(ctx)
		if err != nil {
			return err
		}
		upstream = ref
	}

	if _, err := git.GetRevision(upstream); err != nil {
		return fmt.Errorf("upstream %s does not resolve to a commit: %w", upstream, err)
	}
	if err := eng.CheckUpstream(ctx, opts.BranchName, upstream); err != nil {
		return err
	}

	if err := git.CreateAndCheckoutBranch(ctx, opts.BranchName, upstream); err != nil {
		return err
	}

	base, err := eng.ComputeInitialBase(ctx, opts.BranchName, upstream)
	if err != nil {
		return err
	}
	if err := eng.Store().Set(ctx, engine.Branch{
		Name:     opts.BranchName,
		Upstream: upstream,
		Base:     base,
	}); err != nil {
		return err
	}

	if opts.InjectCurrent {
		// The old branch now stacks on the new one; its own commits and base
		// marker are untouched.
		injectedBranch.Upstream = opts.BranchName
		if err := eng.Store().Set(ctx, injectedBranch); err != nil {
			return err
		}
		splog.Info("Created %s tracking %s; %s now tracks %s.",
			opts.BranchName, upstream, injectedBranch.Name, opts.BranchName)
		return nil
	}

	splog.Info("Created %s tracking %s.", opts.BranchName, upstream)
	return nil
}
