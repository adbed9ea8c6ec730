package actions

import (
	"fmt"
	"strings"

	"stackup.dev/stackup/internal/config"
	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
)

// Freeze marker commit subjects. The indexed commit holds what was staged,
// the unindexed commit holds everything else.
const (
	freezeIndexedMessage   = "FREEZE.indexed"
	freezeUnindexedMessage = "FREEZE.unindexed"
)

// FreezeAction snapshots uncommitted work into marker commits on the
// current branch
func FreezeAction(rt *runtime.Context) error {
	frozen, err := Freeze(rt)
	if err != nil {
		return err
	}
	if !frozen {
		rt.Splog.Info("Nothing to freeze.")
		return nil
	}
	rt.Splog.Info("Froze working tree; run 'stackup thaw' to restore it.")
	return nil
}

// Freeze captures the index and working tree as up to two commits at the
// branch tip and reports whether anything was captured. Staged changes go
// into the first commit, everything else into the second, so a later thaw
// can restore the exact staged/unstaged split. Untracked content beyond the
// configured size ceiling is left in place with a warning.
func Freeze(rt *runtime.Context) (bool, error) {
	ctx := rt.Context

	clean, err := git.IsWorkingTreeClean(ctx)
	if err != nil {
		return false, err
	}
	if clean {
		return false, nil
	}

	limitMB, err := config.FreezeSizeLimitMB(ctx)
	if err != nil {
		return false, err
	}

	includeUntracked := true
	untrackedBytes, err := git.UntrackedBytes(ctx)
	if err != nil {
		return false, err
	}
	if untrackedBytes > int64(limitMB)*1024*1024 {
		rt.Splog.Warn("untracked files exceed the %d MB freeze limit; leaving them out of the snapshot", limitMB)
		includeUntracked = false
	}

	frozen := false

	staged, err := git.HasStagedChanges(ctx)
	if err != nil {
		return false, err
	}
	if staged {
		if err := git.Commit(ctx, freezeIndexedMessage); err != nil {
			return frozen, fmt.Errorf("failed to freeze staged changes: %w", err)
		}
		frozen = true
	}

	if includeUntracked {
		err = git.StageAll(ctx)
	} else {
		err = git.StageTracked(ctx)
	}
	if err != nil {
		return frozen, err
	}

	staged, err = git.HasStagedChanges(ctx)
	if err != nil {
		return frozen, err
	}
	if staged {
		if err := git.Commit(ctx, freezeUnindexedMessage); err != nil {
			return frozen, fmt.Errorf("failed to freeze unstaged changes: %w", err)
		}
		frozen = true
	}

	return frozen, nil
}

// ThawAction restores the most recent freeze snapshot
func ThawAction(rt *runtime.Context) error {
	if err := Thaw(rt); err != nil {
		return err
	}
	rt.Splog.Info("Thawed working tree.")
	return nil
}

// Thaw walks the freeze marker commits at the branch tip and undoes them:
// the unindexed commit becomes unstaged changes, the indexed commit becomes
// staged changes. Returns ErrThawMismatch when the tip carries no markers.
func Thaw(rt *runtime.Context) error {
	ctx := rt.Context
	thawed := false

	subject, err := commitSubject("HEAD")
	if err != nil {
		return err
	}
	if subject == freezeUnindexedMessage {
		if err := git.MixedReset(ctx, "HEAD~"); err != nil {
			return fmt.Errorf("failed to thaw unstaged changes: %w", err)
		}
		thawed = true
		if subject, err = commitSubject("HEAD"); err != nil {
			return err
		}
	}
	if subject == freezeIndexedMessage {
		if err := git.SoftReset(ctx, "HEAD~"); err != nil {
			return fmt.Errorf("failed to thaw staged changes: %w", err)
		}
		thawed = true
	}

	if !thawed {
		return stackuperrors.ErrThawMismatch
	}
	return nil
}

// freezeMarkersAtTip returns the freeze marker commits sitting at the given
// tip, tip-first, and the first commit underneath them.
func freezeMarkersAtTip(tip string) (markers []string, underneath string, err error) {
	rev, err := git.GetRevision(tip)
	if err != nil {
		return nil, "", err
	}

	for {
		subject, err := commitSubject(rev)
		if err != nil {
			return nil, "", err
		}
		if subject != freezeIndexedMessage && subject != freezeUnindexedMessage {
			return markers, rev, nil
		}
		markers = append(markers, rev)
		if rev, err = git.GetRevision(rev + "~"); err != nil {
			return nil, "", err
		}
	}
}

func commitSubject(rev string) (string, error) {
	message, err := git.GetCommitMessage(rev)
	if err != nil {
		return "", err
	}
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject), nil
}
