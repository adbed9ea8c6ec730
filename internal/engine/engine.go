package engine

import (
	"context"
	"sort"

	stackuperrors "stackup.dev/stackup/internal/errors"
)

// Engine ties the branch graph store to the git backend and provides the
// graph-level operations: adjacency, cycle checks, scheduling, base-marker
// maintenance, the per-branch rebase executor and session persistence.
type Engine struct {
	store *Store
}

// NewEngine creates an Engine over the current repository
func NewEngine() *Engine {
	return &Engine{store: NewStore()}
}

// Store returns the underlying branch graph store
func (e *Engine) Store() *Store {
	return e.store
}

// Children returns the branches whose upstream is the given branch, sorted
// by name.
func Children(branches []Branch, branchName string) []Branch {
	var children []Branch
	for _, branch := range branches {
		if branch.Upstream == branchName {
			children = append(children, branch)
		}
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children
}

// Descendants returns every branch transitively downstream of the given
// branch, in breadth-first order.
func Descendants(branches []Branch, branchName string) []Branch {
	var result []Branch
	queue := []string{branchName}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, child := range Children(branches, name) {
			result = append(result, child)
			queue = append(queue, child.Name)
		}
	}
	return result
}

// UpstreamChain walks the tracked-upstream chain from a branch toward its
// root and returns the chain including the branch itself, root last. The
// final element's upstream is the root reference.
func UpstreamChain(branches []Branch, branchName string) []Branch {
	byName := make(map[string]Branch, len(branches))
	for _, branch := range branches {
		byName[branch.Name] = branch
	}

	var chain []Branch
	seen := make(map[string]bool)
	name := branchName
	for {
		branch, ok := byName[name]
		if !ok || seen[name] {
			return chain
		}
		seen[name] = true
		chain = append(chain, branch)
		name = branch.Upstream
	}
}

// CheckUpstream rejects an upstream assignment that would make branchName
// its own transitive ancestor. It walks the ancestor chain from the proposed
// upstream back toward the root; hitting branchName (or the proposed
// upstream again) means a cycle.
func (e *Engine) CheckUpstream(ctx context.Context, branchName, upstream string) error {
	branches, err := e.store.ListAll(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]Branch, len(branches))
	for _, branch := range branches {
		byName[branch.Name] = branch
	}

	if upstream == branchName {
		return stackuperrors.NewCyclicUpstreamError(branchName, upstream, []string{branchName, branchName})
	}

	chain := []string{branchName, upstream}
	seen := map[string]bool{upstream: true}
	name := upstream
	for {
		branch, ok := byName[name]
		if !ok {
			return nil // reached a root reference
		}
		next := branch.Upstream
		chain = append(chain, next)
		if next == branchName || seen[next] {
			return stackuperrors.NewCyclicUpstreamError(branchName, upstream, chain)
		}
		seen[next] = true
		name = next
	}
}
