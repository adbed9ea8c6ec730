package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/internal/git"
)

// Branch metadata lives in the repository-local git config, one entry per
// key, addressable by branch name. A branch is tracked iff its upstream key
// is present. All writes go straight to the config so that a fresh process
// reconstructs the same graph after a crash or interruption.
const (
	upstreamKeySuffix = ".upstream"
	baseKeySuffix     = ".base"
	dormantKeySuffix  = ".dormant"
)

func upstreamKey(branchName string) string {
	return "branch." + branchName + upstreamKeySuffix
}

func baseKey(branchName string) string {
	return "branch." + branchName + baseKeySuffix
}

func dormantKey(branchName string) string {
	return "branch." + branchName + dormantKeySuffix
}

// Store persists the branch dependency graph
type Store struct{}

// NewStore creates a Store over the current repository's local config
func NewStore() *Store {
	return &Store{}
}

// Get returns the metadata for a tracked branch.
// Returns ErrBranchNotTracked when the branch has no upstream entry.
func (s *Store) Get(ctx context.Context, branchName string) (Branch, error) {
	upstream, err := git.ConfigGet(ctx, upstreamKey(branchName))
	if err != nil {
		return Branch{}, err
	}
	if upstream == "" {
		return Branch{}, fmt.Errorf("%s: %w", branchName, stackuperrors.ErrBranchNotTracked)
	}

	base, err := git.ConfigGet(ctx, baseKey(branchName))
	if err != nil {
		return Branch{}, err
	}

	dormant, err := git.ConfigGet(ctx, dormantKey(branchName))
	if err != nil {
		return Branch{}, err
	}

	return Branch{
		Name:     branchName,
		Upstream: upstream,
		Base:     base,
		Dormant:  dormant == "true",
	}, nil
}

// Set writes the metadata for a branch, creating or replacing its entries
func (s *Store) Set(ctx context.Context, branch Branch) error {
	if branch.Name == "" || branch.Upstream == "" {
		return fmt.Errorf("branch entry needs a name and an upstream")
	}

	if err := git.ConfigSet(ctx, upstreamKey(branch.Name), branch.Upstream); err != nil {
		return err
	}

	if branch.Base != "" {
		if err := git.ConfigSet(ctx, baseKey(branch.Name), branch.Base); err != nil {
			return err
		}
	} else if err := git.ConfigUnset(ctx, baseKey(branch.Name)); err != nil {
		return err
	}

	if branch.Dormant {
		return git.ConfigSet(ctx, dormantKey(branch.Name), "true")
	}
	return git.ConfigUnset(ctx, dormantKey(branch.Name))
}

// Delete removes a branch's metadata entries
func (s *Store) Delete(ctx context.Context, branchName string) error {
	for _, key := range []string{upstreamKey(branchName), baseKey(branchName), dormantKey(branchName)} {
		if err := git.ConfigUnset(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ListAll returns every tracked branch, sorted by name. Acyclicity is
// enforced at write time (creation and reparenting), not here.
func (s *Store) ListAll(ctx context.Context) ([]Branch, error) {
	pairs, err := git.ConfigGetRegexp(ctx, `^branch\..*\.upstream$`)
	if err != nil {
		return nil, err
	}

	branches := make([]Branch, 0, len(pairs))
	for _, pair := range pairs {
		name := strings.TrimSuffix(strings.TrimPrefix(pair[0], "branch."), upstreamKeySuffix)
		branch, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}

// IsTracked reports whether a branch has a graph entry
func (s *Store) IsTracked(ctx context.Context, branchName string) (bool, error) {
	upstream, err := git.ConfigGet(ctx, upstreamKey(branchName))
	if err != nil {
		return false, err
	}
	return upstream != "", nil
}
