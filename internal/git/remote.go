package git

import (
	"context"
	"fmt"
	"strings"
)

// ListRemotes returns the names of all configured remotes
func ListRemotes(ctx context.Context) ([]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return lines, nil
}

// RemoteForRef returns the remote a ref like "origin/main" belongs to, or ""
// when the ref does not name a configured remote (local branch, tag, hash).
func RemoteForRef(ctx context.Context, ref string) (string, error) {
	prefix, _, ok := strings.Cut(ref, "/")
	if !ok {
		return "", nil
	}

	remotes, err := ListRemotes(ctx)
	if err != nil {
		return "", err
	}
	for _, remote := range remotes {
		if remote == prefix {
			return remote, nil
		}
	}
	return "", nil
}

// Fetch updates remote-tracking refs from the given remotes in one blocking
// step. git parallelizes across remotes internally via --multiple.
func Fetch(ctx context.Context, remotes []string) error {
	if len(remotes) == 0 {
		return nil
	}

	args := append([]string{"fetch", "--multiple"}, remotes...)
	_, err := RunGitCommandWithContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", strings.Join(remotes, ", "), err)
	}
	return nil
}
