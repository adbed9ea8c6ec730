// Package engine implements the branch dependency graph: the durable store
// of per-branch upstream, base marker and dormancy metadata, topological
// scheduling of rebase passes, the per-branch rebase executor with its
// squash fallback, and the persisted session used to resume a pass after a
// conflict.
package engine
