// Package scenario provides a high-level test scenario that combines a
// Scene, an Engine, and a runtime Context for a terse integration-test API.
package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/engine"
	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/internal/runtime"
	"stackup.dev/stackup/internal/tui"
	"stackup.dev/stackup/testhelpers"
)

// Scenario bundles a Scene with an engine and a runtime context.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Engine  *engine.Engine
	Context *runtime.Context
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: not safe for parallel tests; it uses t.Setenv and changes the
// process working directory.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	// Force non-interactive mode for tests
	t.Setenv("STACKUP_NON_INTERACTIVE", "true")

	scene := testhelpers.NewScene(t, setup)

	git.SetWorkingDir(scene.Dir)
	git.ResetDefaultRepo()
	require.NoError(t, git.InitDefaultRepo())
	t.Cleanup(func() {
		git.SetWorkingDir("")
		git.ResetDefaultRepo()
	})

	eng := engine.NewEngine()
	ctx := &runtime.Context{
		Context:  context.Background(),
		Engine:   eng,
		Splog:    tui.NewSplog(),
		RepoRoot: scene.Dir,
	}

	return &Scenario{
		T:       t,
		Scene:   scene,
		Engine:  eng,
		Context: ctx,
	}
}

// Track records a branch in the graph store with the given upstream and a
// base marker computed from their merge base.
func (s *Scenario) Track(branchName, upstream string) *Scenario {
	s.T.Helper()
	base, err := s.Engine.ComputeInitialBase(s.Context.Context, branchName, upstream)
	require.NoError(s.T, err)
	require.NoError(s.T, s.Engine.Store().Set(s.Context.Context, engine.Branch{
		Name:     branchName,
		Upstream: upstream,
		Base:     base,
	}))
	return s
}

// CreateBranch creates and checks out a new branch
func (s *Scenario) CreateBranch(name string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateAndCheckoutBranch(name))
	return s
}

// Checkout checks out a branch
func (s *Scenario) Checkout(branchName string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branchName))
	return s
}

// Commit creates a file change and commits it on the current branch
func (s *Scenario) Commit(textValue, prefix string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit(textValue, prefix))
	return s
}
