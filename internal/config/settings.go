// Package config provides repository-scoped stackup settings, read from the
// repository-local git config with sensible defaults.
package config

import (
	"context"
	"os"
	"strconv"

	"stackup.dev/stackup/internal/git"
)

const (
	defaultUpstreamKey  = "stackup.default-upstream"
	lkgrRefKey          = "stackup.lkgr-ref"
	freezeSizeLimitKey  = "stackup.freeze-size-limit"
	freezeSizeLimitEnv  = "STACKUP_FREEZE_MAX_SIZE"
	defaultUpstreamRef  = "origin/main"
	defaultLkgrRef      = "origin/lkgr"
	defaultFreezeSizeMB = 100
)

// DefaultUpstream returns the root reference used by the default branch
// creation policy.
func DefaultUpstream(ctx context.Context) (string, error) {
	value, err := git.ConfigGet(ctx, defaultUpstreamKey)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}
	return defaultUpstreamRef, nil
}

// SetDefaultUpstream configures the root reference for the repository
func SetDefaultUpstream(ctx context.Context, ref string) error {
	return git.ConfigSet(ctx, defaultUpstreamKey, ref)
}

// LkgrRef returns the reference used by the --lkgr creation policy
func LkgrRef(ctx context.Context) (string, error) {
	value, err := git.ConfigGet(ctx, lkgrRefKey)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}
	return defaultLkgrRef, nil
}

// FreezeSizeLimitMB returns the ceiling, in megabytes, on untracked content
// included in a freeze snapshot. The STACKUP_FREEZE_MAX_SIZE environment
// variable overrides the repository config.
func FreezeSizeLimitMB(ctx context.Context) (int, error) {
	if env := os.Getenv(freezeSizeLimitEnv); env != "" {
		if limit, err := strconv.Atoi(env); err == nil && limit > 0 {
			return limit, nil
		}
	}

	value, err := git.ConfigGet(ctx, freezeSizeLimitKey)
	if err != nil {
		return 0, err
	}
	if value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
			return limit, nil
		}
	}
	return defaultFreezeSizeMB, nil
}
