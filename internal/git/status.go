package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StageAll stages all changes including untracked files
func StageAll(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "add", "-A")
	if err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// StageTracked stages updates to tracked files only
func StageTracked(ctx context.Context) error {
	_, err := RunGitCommandWithContext(ctx, "add", "-u")
	if err != nil {
		return fmt.Errorf("failed to stage tracked changes: %w", err)
	}
	return nil
}

// HasStagedChanges checks if there are staged changes
func HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return output != "", nil
}

// HasUnstagedChanges checks if there are unstaged changes to tracked files
func HasUnstagedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	return output != "", nil
}

// UntrackedFiles returns the paths of untracked files, honoring ignore rules
func UntrackedFiles(ctx context.Context) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}
	return lines, nil
}

// UntrackedBytes returns the total on-disk size of untracked files
func UntrackedBytes(ctx context.Context) (int64, error) {
	files, err := UntrackedFiles(ctx)
	if err != nil {
		return 0, err
	}

	root, err := GetRepoRoot()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, file := range files {
		info, err := os.Stat(filepath.Join(root, file))
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// IsWorkingTreeClean reports whether the index and working tree have no
// changes and no untracked files
func IsWorkingTreeClean(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check status: %w", err)
	}
	return strings.TrimSpace(output) == "", nil
}
