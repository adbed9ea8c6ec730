package git

import (
	"context"
	"errors"
	"strings"

	stackuperrors "stackup.dev/stackup/internal/errors"
)

// Config helpers over the repository-local git config, which serves as the
// durable store for branch metadata and session state. Reads of missing keys
// return ("", nil) rather than an error.

// isConfigMissing reports whether a git config error means "key not set"
// (git config exits 1 for missing keys and 5 for missing sections).
func isConfigMissing(err error) bool {
	var cmdErr *stackuperrors.GitCommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return cmdErr.Stderr == ""
}

// ConfigGet returns the value of a local config key, or "" when unset
func ConfigGet(ctx context.Context, key string) (string, error) {
	value, err := RunGitCommandWithContext(ctx, "config", "--local", "--get", key)
	if err != nil {
		if isConfigMissing(err) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// ConfigGetAll returns all values of a multi-valued local config key
func ConfigGetAll(ctx context.Context, key string) ([]string, error) {
	output, err := RunGitCommandWithContext(ctx, "config", "--local", "--get-all", key)
	if err != nil {
		if isConfigMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	if output == "" {
		return nil, nil
	}
	return strings.Split(output, "\n"), nil
}

// ConfigSet sets a local config key, replacing any existing value
func ConfigSet(ctx context.Context, key, value string) error {
	_, err := RunGitCommandWithContext(ctx, "config", "--local", key, value)
	return err
}

// ConfigAdd appends a value to a multi-valued local config key
func ConfigAdd(ctx context.Context, key, value string) error {
	_, err := RunGitCommandWithContext(ctx, "config", "--local", "--add", key, value)
	return err
}

// ConfigUnset removes a local config key. Unsetting a missing key is not an error.
func ConfigUnset(ctx context.Context, key string) error {
	_, err := RunGitCommandWithContext(ctx, "config", "--local", "--unset-all", key)
	if err != nil && isConfigMissing(err) {
		return nil
	}
	return err
}

// ConfigGetRegexp returns key/value pairs for all local config keys matching
// the pattern. Multi-valued keys yield one pair per value.
func ConfigGetRegexp(ctx context.Context, pattern string) ([][2]string, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "config", "--local", "--get-regexp", pattern)
	if err != nil {
		if isConfigMissing(err) {
			return nil, nil
		}
		return nil, err
	}

	pairs := make([][2]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}
