package actions_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/actions"
	stackuperrors "stackup.dev/stackup/internal/errors"
	"stackup.dev/stackup/testhelpers"
	"stackup.dev/stackup/testhelpers/scenario"
)

func TestFreezeThaw(t *testing.T) {
	t.Run("round-trips the staged and unstaged split", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		repo := s.Scene.Repo

		// One staged change, one unstaged modification to a tracked file,
		// one untracked file.
		require.NoError(t, repo.CreateChangeAndCommit("v1", "mod"))
		require.NoError(t, repo.CreateChange("staged content", "staged", false))
		require.NoError(t, repo.CreateChange("v2", "mod", true))
		require.NoError(t, repo.CreateChange("untracked content", "untracked", true))

		require.NoError(t, actions.FreezeAction(s.Context))

		clean, err := repo.IsWorkingTreeClean()
		require.NoError(t, err)
		require.True(t, clean)

		messages, err := repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, "FREEZE.unindexed", messages[0])
		require.Equal(t, "FREEZE.indexed", messages[1])

		require.NoError(t, actions.ThawAction(s.Context))

		staged, err := repo.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)
		unstaged, err := repo.HasUnstagedChanges()
		require.NoError(t, err)
		require.True(t, unstaged)
		untracked, err := repo.HasUntrackedFiles()
		require.NoError(t, err)
		require.True(t, untracked)

		messages, err = repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		for _, message := range messages {
			require.NotContains(t, message, "FREEZE")
		}
	})

	t.Run("staged-only change freezes to a single marker commit", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		repo := s.Scene.Repo

		require.NoError(t, repo.CreateChange("staged content", "staged", false))
		require.NoError(t, actions.FreezeAction(s.Context))

		messages, err := repo.ListCurrentBranchCommitMessages()
		require.NoError(t, err)
		require.Equal(t, "FREEZE.indexed", messages[0])

		require.NoError(t, actions.ThawAction(s.Context))

		staged, err := repo.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)
	})

	t.Run("clean tree freezes nothing", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		frozen, err := actions.Freeze(s.Context)
		require.NoError(t, err)
		require.False(t, frozen)
	})

	t.Run("thaw without markers fails", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		err := actions.Thaw(s.Context)
		require.ErrorIs(t, err, stackuperrors.ErrThawMismatch)
	})

	t.Run("oversized untracked content is left out of the snapshot", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		repo := s.Scene.Repo
		t.Setenv("STACKUP_FREEZE_MAX_SIZE", "1")

		bigPath := filepath.Join(s.Scene.Dir, "big_untracked.bin")
		require.NoError(t, os.WriteFile(bigPath, []byte(strings.Repeat("x", 2*1024*1024)), 0600))
		require.NoError(t, repo.CreateChange("staged content", "staged", false))

		frozen, err := actions.Freeze(s.Context)
		require.NoError(t, err)
		require.True(t, frozen)

		// The staged change froze, the oversized file stayed untracked.
		untracked, err := repo.HasUntrackedFiles()
		require.NoError(t, err)
		require.True(t, untracked)

		require.NoError(t, actions.ThawAction(s.Context))
		staged, err := repo.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)
	})
}
