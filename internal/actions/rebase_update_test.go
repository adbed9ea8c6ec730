package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/actions"
	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/testhelpers"
	"stackup.dev/stackup/testhelpers/scenario"
)

func TestRebaseUpdateAction(t *testing.T) {
	t.Run("rebases a two-branch stack onto the advanced root", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a").Commit("a change", "a").Track("a", "main")
		s.CreateBranch("b").Commit("b change", "b").Track("b", "a")
		s.Checkout("main").Commit("upstream change", "up").Checkout("b")

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.NoError(t, err)

		// a sits on main's new tip, b on a's new tip.
		require.True(t, s.Scene.Repo.IsAncestor("main", "a"))
		require.True(t, s.Scene.Repo.IsAncestor("a", "b"))

		mainTip, err := s.Scene.Repo.GetRevision("main")
		require.NoError(t, err)
		aTip, err := s.Scene.Repo.GetRevision("a")
		require.NoError(t, err)

		a, err := s.Engine.Store().Get(s.Context.Context, "a")
		require.NoError(t, err)
		require.Equal(t, mainTip, a.Base)
		b, err := s.Engine.Store().Get(s.Context.Context, "b")
		require.NoError(t, err)
		require.Equal(t, aTip, b.Base)

		// The pass returns to the starting branch and clears its session.
		current, err := s.Scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "b", current)

		session, err := s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("second run with nothing new is a no-op", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a").Commit("a change", "a").Track("a", "main")
		s.Checkout("main").Commit("upstream change", "up").Checkout("a")

		require.NoError(t, actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true}))
		tipAfterFirst, err := s.Scene.Repo.GetRevision("a")
		require.NoError(t, err)

		require.NoError(t, actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true}))
		tipAfterSecond, err := s.Scene.Repo.GetRevision("a")
		require.NoError(t, err)
		require.Equal(t, tipAfterFirst, tipAfterSecond)
	})

	t.Run("dormant branches are skipped untouched", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("c").Commit("c change", "c").Track("c", "main")
		require.NoError(t, actions.MarkDormantAction(s.Context, actions.MarkDormantOptions{BranchName: "c"}))
		s.Checkout("main").Commit("upstream change", "up")

		tipBefore, err := s.Scene.Repo.GetRevision("c")
		require.NoError(t, err)

		err = actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.NoError(t, err)

		tipAfter, err := s.Scene.Repo.GetRevision("c")
		require.NoError(t, err)
		require.Equal(t, tipBefore, tipAfter)

		c, err := s.Engine.Store().Get(s.Context.Context, "c")
		require.NoError(t, err)
		require.True(t, c.Dormant)
	})

	t.Run("freezes uncommitted work and restores it after the pass", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a").Commit("a change", "a").Track("a", "main")
		s.Checkout("main").Commit("upstream change", "up").Checkout("a")
		require.NoError(t, s.Scene.Repo.CreateChange("wip content", "wip", true))

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.NoError(t, err)

		untracked, err := s.Scene.Repo.HasUntrackedFiles()
		require.NoError(t, err)
		require.True(t, untracked)

		messages, err := s.Scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		for _, message := range messages {
			require.NotContains(t, message, "FREEZE")
		}
	})

	t.Run("squash-merged branch is cleaned up and its child reparented", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("x").Commit("x-v1", "conflict").Commit("x-v2", "conflict").Track("x", "main")
		s.CreateBranch("y").Commit("y change", "y").Track("y", "x")

		// main takes x's final content as one squashed commit.
		s.Checkout("main")
		require.NoError(t, s.Scene.Repo.CreateChange("x-v2", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "squash-merged x"))

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.NoError(t, err)

		branches, err := s.Scene.Repo.GetLocalBranches()
		require.NoError(t, err)
		require.NotContains(t, branches, "x")

		tracked, err := s.Engine.Store().IsTracked(s.Context.Context, "x")
		require.NoError(t, err)
		require.False(t, tracked)

		mainTip, err := s.Scene.Repo.GetRevision("main")
		require.NoError(t, err)
		y, err := s.Engine.Store().Get(s.Context.Context, "y")
		require.NoError(t, err)
		require.Equal(t, "main", y.Upstream)
		require.Equal(t, mainTip, y.Base)
		require.True(t, s.Scene.Repo.IsAncestor("main", "y"))
	})

	t.Run("conflict halts the pass and a rerun resumes after resolution", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a")
		require.NoError(t, s.Scene.Repo.CreateChange("a-version", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "a change"))
		s.Track("a", "main")
		s.CreateBranch("b").Commit("b change", "b").Track("b", "a")

		s.Checkout("main")
		require.NoError(t, s.Scene.Repo.CreateChange("main-version", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "conflicting change"))

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.ErrorIs(t, err, stackuperrors.ErrRebaseConflict)
		require.True(t, s.Scene.Repo.RebaseInProgress())

		session, err := s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.NotNil(t, session)
		require.Equal(t, "a", session.Stalled)
		require.Equal(t, []string{"b"}, session.Queue)

		// Resolve in favor of the branch and finish the rebase by hand.
		require.NoError(t, s.Scene.Repo.ResolveMergeConflicts())
		require.NoError(t, s.Scene.Repo.MarkMergeConflictsAsResolved())
		require.NoError(t, s.Scene.Repo.RunGitCommand("-c", "core.editor=true", "rebase", "--continue"))
		require.False(t, s.Scene.Repo.RebaseInProgress())

		err = actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.NoError(t, err)

		// a keeps its resolved tip, b sits on it, nothing is left pending.
		require.True(t, s.Scene.Repo.IsAncestor("main", "a"))
		require.True(t, s.Scene.Repo.IsAncestor("a", "b"))

		session, err = s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("keep-going skips the conflicted branch and its descendants", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a")
		require.NoError(t, s.Scene.Repo.CreateChange("a-version", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "a change"))
		s.Track("a", "main")
		s.CreateBranch("b").Commit("b change", "b").Track("b", "a")
		s.Checkout("main")
		s.CreateBranch("other").Commit("other change", "other").Track("other", "main")

		s.Checkout("main")
		require.NoError(t, s.Scene.Repo.CreateChange("main-version", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "conflicting change"))

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{
			NoFetch:   true,
			KeepGoing: true,
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "could not be rebased")
		require.False(t, s.Scene.Repo.RebaseInProgress())

		// The independent branch still got rebased; the stalled stack did not.
		require.True(t, s.Scene.Repo.IsAncestor("main", "other"))
		require.False(t, s.Scene.Repo.IsAncestor("main", "a"))

		session, err := s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("rejects a bad selection before touching the tree", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a").Commit("a change", "a").Track("a", "main")
		require.NoError(t, s.Scene.Repo.CreateChange("wip content", "wip", false))

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{
			NoFetch:  true,
			Branches: []string{"no-such-branch"},
		})
		require.ErrorIs(t, err, stackuperrors.ErrBranchNotTracked)

		// The staged change is still staged; nothing was frozen or persisted.
		staged, err := s.Scene.Repo.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)

		messages, err := s.Scene.Repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		for _, message := range messages {
			require.NotContains(t, message, "FREEZE")
		}

		session, err := s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("stalled branch emptied by the resolution is cleaned up on the rerun", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a")
		require.NoError(t, s.Scene.Repo.CreateChange("a-version", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "a change"))
		s.Track("a", "main")

		s.Checkout("main")
		require.NoError(t, s.Scene.Repo.CreateChange("main-version", "conflict", false))
		require.NoError(t, s.Scene.Repo.RunGitCommand("commit", "-m", "conflicting change"))

		err := actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.ErrorIs(t, err, stackuperrors.ErrRebaseConflict)
		require.True(t, s.Scene.Repo.RebaseInProgress())

		// Drop the branch's commit in favor of the upstream version.
		require.NoError(t, s.Scene.Repo.RunGitCommand("rebase", "--skip"))
		require.False(t, s.Scene.Repo.RebaseInProgress())

		err = actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{NoFetch: true})
		require.NoError(t, err)

		// The rerun sees the now-empty branch and cleans it up.
		branches, err := s.Scene.Repo.GetLocalBranches()
		require.NoError(t, err)
		require.NotContains(t, branches, "a")

		tracked, err := s.Engine.Store().IsTracked(s.Context.Context, "a")
		require.NoError(t, err)
		require.False(t, tracked)

		session, err := s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("selection restricts the pass to the named branches", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a").Commit("a change", "a").Track("a", "main")
		s.Checkout("main")
		s.CreateBranch("other").Commit("other change", "other").Track("other", "main")
		s.Checkout("main").Commit("upstream change", "up")

		otherTip, err := s.Scene.Repo.GetRevision("other")
		require.NoError(t, err)

		err = actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{
			NoFetch:  true,
			Branches: []string{"a"},
		})
		require.NoError(t, err)

		require.True(t, s.Scene.Repo.IsAncestor("main", "a"))
		unchanged, err := s.Scene.Repo.GetRevision("other")
		require.NoError(t, err)
		require.Equal(t, otherTip, unchanged)
	})

	t.Run("fetches the remote the roots point at", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		_, err := s.Scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, s.Scene.Repo.PushBranch("origin", "main"))

		s.CreateBranch("a").Commit("a change", "a").Track("a", "origin/main")

		// Advance the remote through a second clone of main.
		s.Checkout("main").Commit("remote change", "remote")
		require.NoError(t, s.Scene.Repo.RunGitCommand("push", "origin", "main"))
		require.NoError(t, s.Scene.Repo.RunGitCommand("update-ref", "refs/remotes/origin/main", "origin/main~1"))
		s.Checkout("a")

		err = actions.RebaseUpdateAction(s.Context, actions.RebaseUpdateOptions{})
		require.NoError(t, err)

		// The fetch picked up the new remote tip and a was rebased onto it.
		require.True(t, s.Scene.Repo.IsAncestor("main", "a"))
	})
}
