package runtime

import (
	"context"
	"fmt"
	"path/filepath"

	"stackup.dev/stackup/internal/engine"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/tui"
)

// Context provides access to the engine and output for commands
type Context struct {
	Context  context.Context
	Engine   *engine.Engine
	Splog    *tui.Splog
	RepoRoot string
}

// GetContext initializes the repository and builds the runtime context.
// The rotating file log lives under .git/stackup.
func GetContext(ctx context.Context) (*Context, error) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	splog, err := tui.NewSplogWithConfig(filepath.Join(repoRoot, ".git", "stackup", "stackup.log"))
	if err != nil {
		// File logging is best-effort; fall back to console only.
		splog = tui.NewSplog()
	}

	return &Context{
		Context:  ctx,
		Engine:   engine.NewEngine(),
		Splog:    splog,
		RepoRoot: repoRoot,
	}, nil
}
