package engine

// Branch is one node of the dependency graph: a local branch, the reference
// it is rebased onto, and the cached marker for where its own commits begin.
type Branch struct {
	// Name is the local branch name and the unique key in the store.
	Name string

	// Upstream is the parent in the DAG: either another tracked branch or a
	// root reference (remote-tracking ref or tag).
	Upstream string

	// Base is the base marker: the commit from which this branch's own
	// commits begin. It is sticky; only creation, a successful rebase, or
	// reparenting may move it.
	Base string

	// Dormant excludes the branch from automated passes while keeping it in
	// the graph.
	Dormant bool
}

// RebaseOutcome represents the result of one branch's rebase attempt
type RebaseOutcome int

const (
	// RebaseUpToDate indicates no rebase was needed
	RebaseUpToDate RebaseOutcome = iota
	// RebaseDone indicates the branch's commits were replayed cleanly
	RebaseDone
	// RebaseSquashed indicates the structured rebase conflicted but the
	// squashed form of the branch applied cleanly
	RebaseSquashed
	// RebaseConflicted indicates the attempt hit a conflict that needs the
	// user (after the squash fallback, unless it was disabled)
	RebaseConflicted
)

// RebaseBranchResult carries the outcome of one branch's rebase attempt
type RebaseBranchResult struct {
	Outcome RebaseOutcome

	// NewBase is the attachment point after a successful rebase: the upstream
	// tip the branch's commits now sit on. Set unless Outcome is
	// RebaseConflicted.
	NewBase string

	// SquashAttempted is true when the squash fallback ran (whether or not
	// it succeeded).
	SquashAttempted bool
}

// RebaseOptions controls a single branch rebase attempt
type RebaseOptions struct {
	// NoSquash disables the squash fallback; any conflict is immediately
	// surfaced.
	NoSquash bool
}
