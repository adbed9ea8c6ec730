// Package git provides low-level Git operations for stackup: command
// execution with timeouts, repository access through go-git, rebase and
// patch-apply primitives with conflict detection, remote fetching, and
// local-config access used as the durable metadata store.
package git
