// Package errors provides sentinel errors and custom error types for the stackup application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchNotTracked indicates that a branch has no configured upstream
	ErrBranchNotTracked = errors.New("branch not tracked")

	// ErrRebaseConflict indicates that a rebase operation encountered a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrSquashFallbackConflict indicates that both the rebase and the squashed
	// retry of a branch encountered conflicts
	ErrSquashFallbackConflict = errors.New("squash fallback conflict")

	// ErrRebaseInProgress indicates that a rebase is already in progress
	ErrRebaseInProgress = errors.New("rebase in progress")

	// ErrCyclicUpstream indicates that an upstream assignment would create a cycle
	ErrCyclicUpstream = errors.New("cyclic upstream")

	// ErrConflictingCreationFlags indicates that mutually exclusive upstream
	// selection flags were supplied together
	ErrConflictingCreationFlags = errors.New("conflicting upstream flags")

	// ErrThawMismatch indicates that the expected freeze commits were not found
	// at the branch tip
	ErrThawMismatch = errors.New("nothing to thaw")
)

// BranchNotFoundError represents an error when a branch is not found
type BranchNotFoundError struct {
	BranchName string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %s does not exist", e.BranchName)
}

// Is returns true if the target error is ErrBranchNotFound
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NewBranchNotFoundError creates a new BranchNotFoundError
func NewBranchNotFoundError(branchName string) *BranchNotFoundError {
	return &BranchNotFoundError{BranchName: branchName}
}

// RebaseConflictError represents an error when a rebase encounters a conflict.
// SquashAttempted is set when the squash fallback was also tried and failed.
type RebaseConflictError struct {
	BranchName      string
	Onto            string
	SquashAttempted bool
}

func (e *RebaseConflictError) Error() string {
	if e.SquashAttempted {
		return fmt.Sprintf("rebase and squash retry of %s onto %s both hit conflicts", e.BranchName, e.Onto)
	}
	return fmt.Sprintf("rebase conflict on branch %s", e.BranchName)
}

// Is returns true for ErrRebaseConflict, and additionally for
// ErrSquashFallbackConflict when the fallback was attempted.
func (e *RebaseConflictError) Is(target error) bool {
	if target == ErrRebaseConflict {
		return true
	}
	return e.SquashAttempted && target == ErrSquashFallbackConflict
}

// NewRebaseConflictError creates a new RebaseConflictError
func NewRebaseConflictError(branchName, onto string, squashAttempted bool) *RebaseConflictError {
	return &RebaseConflictError{
		BranchName:      branchName,
		Onto:            onto,
		SquashAttempted: squashAttempted,
	}
}

// CyclicUpstreamError represents a rejected upstream assignment that would
// make a branch its own transitive ancestor.
type CyclicUpstreamError struct {
	BranchName string
	Upstream   string
	Chain      []string
}

func (e *CyclicUpstreamError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("setting upstream of %s to %s would create a cycle: %s",
			e.BranchName, e.Upstream, strings.Join(e.Chain, " -> "))
	}
	return fmt.Sprintf("setting upstream of %s to %s would create a cycle", e.BranchName, e.Upstream)
}

// Is returns true if the target error is ErrCyclicUpstream
func (e *CyclicUpstreamError) Is(target error) bool {
	return target == ErrCyclicUpstream
}

// NewCyclicUpstreamError creates a new CyclicUpstreamError
func NewCyclicUpstreamError(branchName, upstream string, chain []string) *CyclicUpstreamError {
	return &CyclicUpstreamError{BranchName: branchName, Upstream: upstream, Chain: chain}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
