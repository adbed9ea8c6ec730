package actions

import (
	"fmt"
	"sort"
	"strings"

	"stackup.dev/stackup/internal/engine"
	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
)

// RebaseUpdateOptions contains options for the rebase-update command
type RebaseUpdateOptions struct {
	// NoFetch skips the remote fetch and rebases onto the currently-known
	// remote state.
	NoFetch bool

	// KeepGoing turns stop-on-conflict into skip-and-continue: a conflicted
	// branch and its descendants are left behind while independent branches
	// still get rebased.
	KeepGoing bool

	// NoSquash disables the squash fallback; any conflict halts (or skips,
	// under KeepGoing) immediately.
	NoSquash bool

	// Current restricts the pass to the currently checked-out branch.
	Current bool

	// Tree extends the selection to every descendant of the selected
	// branches.
	Tree bool

	// Branches restricts the pass to the named branches.
	Branches []string
}

// RebaseUpdateAction runs one rebase pass over the branch graph: freeze
// uncommitted work, fetch, rebase every selected branch in dependency order,
// clean up branches whose commits all landed upstream, then return to the
// starting branch and thaw. An interrupted pass (conflict, crash) leaves a
// persisted session behind; rerunning the command resumes where it stopped.
func RebaseUpdateAction(rt *runtime.Context, opts RebaseUpdateOptions) error {
	ctx := rt.Context
	eng := rt.Engine
	splog := rt.Splog

	if git.IsRebaseInProgress(ctx) {
		return fmt.Errorf("a rebase is in progress; resolve it (git rebase --continue) or abort it (git rebase --abort), then rerun: %w",
			stackuperrors.ErrRebaseInProgress)
	}

	session, err := eng.LoadSession(ctx)
	if err != nil {
		return err
	}

	if session != nil {
		splog.Info("Resuming interrupted rebase-update.")
		if err := resumeStalled(rt, session); err != nil {
			return err
		}
	} else {
		session, err = prepareSession(rt, opts)
		if err != nil {
			return err
		}
		if session == nil {
			splog.Info("No branches to rebase.")
			return nil
		}

		if !opts.NoFetch {
			if err := fetchUpstreamRemotes(rt, session.Queue); err != nil {
				// Nothing has been rebased yet; put the tree back.
				restoreErr := restoreAndFinish(rt, session)
				if restoreErr != nil {
					splog.Warn("failed to restore after fetch error: %v", restoreErr)
				}
				return err
			}
		}
	}

	processed, failed, err := executeQueue(rt, session, opts)
	if err != nil {
		return err
	}

	if len(failed) == 0 {
		deleted, err := cleanBranches(rt, processed)
		if err != nil {
			return err
		}
		if len(deleted) == 0 {
			splog.Info("All branches are up to date.")
		}
	}

	if err := restoreAndFinish(rt, session); err != nil {
		return err
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		return fmt.Errorf("%d branch(es) could not be rebased: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// prepareSession freezes uncommitted work, computes the schedule and
// persists the new session. Returns nil when the selection is empty.
func prepareSession(rt *runtime.Context, opts RebaseUpdateOptions) (*engine.Session, error) {
	ctx := rt.Context
	eng := rt.Engine

	startingBranch, onBranch, err := currentBranchOrRev()
	if err != nil {
		return nil, err
	}

	startingUpstream := ""
	if onBranch {
		if entry, err := eng.Store().Get(ctx, startingBranch); err == nil {
			startingUpstream = entry.Upstream
		}
	}

	// Validate the selection before the freeze; a caller error must not
	// leave freeze commits behind.
	selected := append([]string(nil), opts.Branches...)
	if opts.Current {
		if !onBranch {
			return nil, fmt.Errorf("--current requires HEAD to be on a branch: %w", stackuperrors.ErrNotOnBranch)
		}
		selected = append(selected, startingBranch)
	}
	for _, name := range selected {
		tracked, err := eng.Store().IsTracked(ctx, name)
		if err != nil {
			return nil, err
		}
		if !tracked {
			return nil, fmt.Errorf("%s: %w", name, stackuperrors.ErrBranchNotTracked)
		}
	}

	frozen, err := Freeze(rt)
	if err != nil {
		return nil, err
	}
	if frozen {
		rt.Splog.Info("Freezing uncommitted work for the duration of the pass.")
	}

	branches, err := eng.Store().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	schedule := engine.Schedule(engine.Restrict(branches, selected, opts.Tree))
	if len(schedule) == 0 {
		// Undo the freeze; there is no pass to run.
		if frozen {
			if err := Thaw(rt); err != nil {
				rt.Splog.Warn("failed to thaw: %v", err)
			}
		}
		return nil, nil
	}

	session := &engine.Session{
		StartingBranch:   startingBranch,
		StartingUpstream: startingUpstream,
		Frozen:           frozen,
	}
	for _, branch := range schedule {
		session.Queue = append(session.Queue, branch.Name)
	}
	if err := eng.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// resumeStalled puts the branch a previous pass stopped on back at the
// front of the queue. When its tip now sits on the recorded attachment
// point the user finished the rebase, and processing it again is a cheap
// catch-up that also makes it visible to this run's cleanup; otherwise the
// rebase was aborted and the branch gets a fresh attempt.
func resumeStalled(rt *runtime.Context, session *engine.Session) error {
	if session.Stalled == "" {
		return nil
	}

	ctx := rt.Context
	name := session.Stalled
	session.Stalled = ""
	stalledOnto := session.StalledOnto
	session.StalledOnto = ""

	if !git.BranchExists(name) {
		rt.Splog.Info("Stalled branch %s is gone; continuing.", name)
		return rt.Engine.SaveSession(ctx, session)
	}

	resolved := false
	if stalledOnto != "" {
		tip, err := git.GetRevision(name)
		if err != nil {
			return err
		}
		resolved, err = git.IsAncestor(stalledOnto, tip)
		if err != nil {
			return err
		}
	}

	if resolved {
		rt.Splog.Info("%s was resolved; continuing with the rest of the stack.", name)
	} else {
		rt.Splog.Info("Retrying %s.", name)
	}
	session.Queue = append([]string{name}, session.Queue...)
	return rt.Engine.SaveSession(ctx, session)
}

// executeQueue rebases each queued branch in order, persisting the shrinking
// queue after every branch so an interruption at any point is resumable.
func executeQueue(rt *runtime.Context, session *engine.Session, opts RebaseUpdateOptions) (processed, failed []string, err error) {
	ctx := rt.Context
	eng := rt.Engine
	splog := rt.Splog

	failedSet := make(map[string]bool)

	for len(session.Queue) > 0 {
		name := session.Queue[0]

		branch, getErr := eng.Store().Get(ctx, name)
		if getErr != nil {
			splog.Debug("Skipping %s: %v", name, getErr)
			if err := popQueue(rt, session); err != nil {
				return processed, failed, err
			}
			continue
		}

		if failedSet[branch.Upstream] {
			splog.Warn("skipping %s: its upstream %s was not rebased", name, branch.Upstream)
			failedSet[name] = true
			failed = append(failed, name)
			if err := popQueue(rt, session); err != nil {
				return processed, failed, err
			}
			continue
		}

		splog.Info("Rebasing: %s", name)
		result, rebaseErr := eng.RebaseBranch(ctx, branch, engine.RebaseOptions{NoSquash: opts.NoSquash})
		if rebaseErr != nil {
			// Unexpected backend failure; the session stays behind so a rerun
			// picks up here.
			return processed, failed, rebaseErr
		}

		switch result.Outcome {
		case engine.RebaseUpToDate:
			splog.Debug("%s is already up to date.", name)
		case engine.RebaseDone:
		case engine.RebaseSquashed:
			splog.Info("Rebase of %s conflicted; its squashed form applied cleanly.", name)
		case engine.RebaseConflicted:
			if opts.KeepGoing {
				splog.Warn("conflict while rebasing %s; skipping it and its descendants", name)
				if git.IsRebaseInProgress(ctx) {
					if err := git.RebaseAbort(ctx); err != nil {
						return processed, failed, err
					}
				}
				failedSet[name] = true
				failed = append(failed, name)
				if err := popQueue(rt, session); err != nil {
					return processed, failed, err
				}
				continue
			}
			return processed, failed, haltOnConflict(rt, session, branch, result)
		}

		processed = append(processed, name)
		if err := popQueue(rt, session); err != nil {
			return processed, failed, err
		}
	}

	return processed, failed, nil
}

func popQueue(rt *runtime.Context, session *engine.Session) error {
	session.Queue = session.Queue[1:]
	return rt.Engine.SaveSession(rt.Context, session)
}

// haltOnConflict records the stalled branch in the session and tells the
// user how to continue. The conflicted rebase is left open on purpose.
func haltOnConflict(rt *runtime.Context, session *engine.Session, branch engine.Branch, result engine.RebaseBranchResult) error {
	ctx := rt.Context
	splog := rt.Splog

	onto, err := git.GetRevision(branch.Upstream)
	if err != nil {
		onto = ""
	}

	session.Queue = session.Queue[1:]
	session.Stalled = branch.Name
	session.StalledOnto = onto
	if err := rt.Engine.SaveSession(ctx, session); err != nil {
		return err
	}

	if result.SquashAttempted {
		splog.Error("both the rebase of %s onto %s and its squashed form hit conflicts", branch.Name, branch.Upstream)
	} else {
		splog.Error("conflict while rebasing %s onto %s", branch.Name, branch.Upstream)
	}
	splog.Info("Resolve the conflict and run 'git rebase --continue', then rerun 'stackup rebase-update'.")
	splog.Info("Or run 'git rebase --abort', then rerun 'stackup rebase-update' to try again later.")

	return stackuperrors.NewRebaseConflictError(branch.Name, branch.Upstream, result.SquashAttempted)
}

// fetchUpstreamRemotes fetches every remote referenced by the upstream of a
// queued branch
func fetchUpstreamRemotes(rt *runtime.Context, queue []string) error {
	ctx := rt.Context

	seen := make(map[string]bool)
	var remotes []string
	for _, name := range queue {
		branch, err := rt.Engine.Store().Get(ctx, name)
		if err != nil {
			continue
		}
		remote, err := git.RemoteForRef(ctx, branch.Upstream)
		if err != nil {
			return err
		}
		if remote != "" && !seen[remote] {
			seen[remote] = true
			remotes = append(remotes, remote)
		}
	}

	if len(remotes) == 0 {
		return nil
	}
	rt.Splog.Info("Fetching %s.", strings.Join(remotes, ", "))
	return git.Fetch(ctx, remotes)
}

// restoreAndFinish returns to the branch the pass started from, thaws any
// frozen work and clears the session
func restoreAndFinish(rt *runtime.Context, session *engine.Session) error {
	ctx := rt.Context
	splog := rt.Splog

	target := session.StartingBranch
	if target != "" && !git.BranchExists(target) && session.StartingUpstream != "" {
		splog.Info("%s was cleaned up; returning to %s.", target, session.StartingUpstream)
		target = session.StartingUpstream
	}
	if target != "" {
		current, _, err := currentBranchOrRev()
		if err != nil || current != target {
			if err := git.CheckoutBranch(ctx, target); err != nil {
				splog.Warn("failed to return to %s: %v", target, err)
			}
		}
	}

	if session.Frozen {
		if err := Thaw(rt); err != nil {
			splog.Warn("failed to thaw frozen work: %v", err)
		}
	}

	return rt.Engine.ClearSession(ctx)
}
