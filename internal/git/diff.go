package git

import (
	"context"
	"fmt"
)

// DiffAsSquash returns the full diff of base..head as a single binary-safe
// patch, the squashed form of the branch's commits.
func DiffAsSquash(ctx context.Context, base, head string) (string, error) {
	patch, err := defaultRunner.runInternal(ctx, "", false, "diff", "--binary", "--full-index", base, head)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s..%s: %w", base, head, err)
	}
	return patch, nil
}

// ApplyPatchResult reports how a patch application went
type ApplyPatchResult int

const (
	// ApplyDone indicates the patch applied cleanly
	ApplyDone ApplyPatchResult = iota
	// ApplyConflict indicates the patch did not apply
	ApplyConflict
)

// ApplyPatchToIndex applies a patch to the working tree and index of the
// current checkout. The three-way fallback makes a patch whose content
// already exists in the target apply cleanly as a no-op, which is how a
// squash-merged branch is recognized. The patch must carry full blob ids
// (DiffAsSquash does) for the fallback to work.
func ApplyPatchToIndex(ctx context.Context, patch string) (ApplyPatchResult, error) {
	_, err := RunGitCommandWithInputAndContext(ctx, patch, "apply", "--index", "--3way", "--whitespace=nowarn", "-")
	if err != nil {
		// A conflicted three-way apply can leave stages in the index.
		_, _ = RunGitCommandWithContext(ctx, "reset", "--hard", "HEAD")
		return ApplyConflict, nil
	}
	return ApplyDone, nil
}

// Commit records the current index as a commit with the given message.
// Hooks are bypassed so synthetic commits cannot be rejected or mutated.
func Commit(ctx context.Context, message string) error {
	_, err := RunGitCommandWithContext(ctx, "commit", "--no-verify", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// IsDiffEmpty reports whether two revisions have identical trees
func IsDiffEmpty(ctx context.Context, left, right string) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--name-only", left, right)
	if err != nil {
		return false, err
	}
	return output == "", nil
}
