package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/actions"
	"stackup.dev/stackup/internal/config"
	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/testhelpers"
	"stackup.dev/stackup/testhelpers/scenario"
)

func TestNewBranchAction(t *testing.T) {
	t.Run("creates a tracked branch at the default upstream tip", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		require.NoError(t, config.SetDefaultUpstream(s.Context.Context, "main"))

		mainTip, err := s.Scene.Repo.GetRevision("main")
		require.NoError(t, err)

		err = actions.NewBranchAction(s.Context, actions.NewBranchOptions{BranchName: "feature"})
		require.NoError(t, err)

		current, err := s.Scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "feature", current)

		branch, err := s.Engine.Store().Get(s.Context.Context, "feature")
		require.NoError(t, err)
		require.Equal(t, "main", branch.Upstream)
		require.Equal(t, mainTip, branch.Base)
	})

	t.Run("explicit upstream positions the branch at that tip", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("base-branch").Commit("base work", "base").Checkout("main")

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName: "feature",
			Upstream:   "base-branch",
		})
		require.NoError(t, err)

		featureTip, err := s.Scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		baseTip, err := s.Scene.Repo.GetRevision("base-branch")
		require.NoError(t, err)
		require.Equal(t, baseTip, featureTip)
	})

	t.Run("upstream_current stacks on the current branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("under").Commit("under work", "under")

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName:      "feature",
			UpstreamCurrent: true,
		})
		require.NoError(t, err)

		branch, err := s.Engine.Store().Get(s.Context.Context, "feature")
		require.NoError(t, err)
		require.Equal(t, "under", branch.Upstream)
	})

	t.Run("inject_current inserts between the current branch and its upstream", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("d").Commit("d work", "d").Track("d", "main")
		originalBase, err := s.Engine.Store().Get(s.Context.Context, "d")
		require.NoError(t, err)

		err = actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName:    "z",
			InjectCurrent: true,
		})
		require.NoError(t, err)

		z, err := s.Engine.Store().Get(s.Context.Context, "z")
		require.NoError(t, err)
		require.Equal(t, "main", z.Upstream)

		d, err := s.Engine.Store().Get(s.Context.Context, "d")
		require.NoError(t, err)
		require.Equal(t, "z", d.Upstream)
		require.Equal(t, originalBase.Base, d.Base)

		// The new branch starts at the old upstream's tip, so d keeps its
		// commits to itself.
		mainTip, err := s.Scene.Repo.GetRevision("main")
		require.NoError(t, err)
		zTip, err := s.Scene.Repo.GetRevision("z")
		require.NoError(t, err)
		require.Equal(t, mainTip, zTip)
	})

	t.Run("carries uncommitted changes onto the new branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		require.NoError(t, config.SetDefaultUpstream(s.Context.Context, "main"))
		require.NoError(t, s.Scene.Repo.CreateChange("wip", "wip", true))

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{BranchName: "feature"})
		require.NoError(t, err)

		untracked, err := s.Scene.Repo.HasUntrackedFiles()
		require.NoError(t, err)
		require.True(t, untracked)
	})

	t.Run("rejects conflicting policy flags before mutating anything", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName: "feature",
			Upstream:   "main",
			Lkgr:       true,
		})
		require.ErrorIs(t, err, stackuperrors.ErrConflictingCreationFlags)

		branches, err := s.Scene.Repo.GetLocalBranches()
		require.NoError(t, err)
		require.NotContains(t, branches, "feature")
	})

	t.Run("rejects an existing branch name", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("feature").Checkout("main")

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName: "feature",
			Upstream:   "main",
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "already exists")
	})

	t.Run("rejects invalid branch names", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName: "bad..name",
			Upstream:   "main",
		})
		require.Error(t, err)
	})

	t.Run("fails when the upstream does not resolve", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		err := actions.NewBranchAction(s.Context, actions.NewBranchOptions{
			BranchName: "feature",
			Upstream:   "origin/missing",
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "does not resolve")
	})
}
