package git_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/testhelpers"
	"stackup.dev/stackup/testhelpers/scenario"
)

func TestCommitRange(t *testing.T) {
	t.Run("linear range lists the branch commits newest first", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		base, err := s.Scene.Repo.GetRevision("main")
		require.NoError(t, err)
		s.CreateBranch("a").Commit("first", "one").Commit("second", "two")

		subjects, err := git.GetCommitRangeSubjects(base, "a")
		require.NoError(t, err)
		require.Equal(t, []string{"second", "first"}, subjects)

		shas, err := git.GetCommitRangeSHAs(base, "a")
		require.NoError(t, err)
		require.Len(t, shas, 2)
	})

	t.Run("excludes everything reachable from the base", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.CreateBranch("a").Commit("a change", "a")
		s.Checkout("main").Commit("upstream change", "up").Checkout("a")
		require.NoError(t, s.Scene.Repo.RunGitCommand("merge", "main", "-m", "merge upstream"))

		// Against the new upstream tip the range holds only the branch's own
		// work, even though the merge pulled upstream history into the branch.
		subjects, err := git.GetCommitRangeSubjects("main", "a")
		require.NoError(t, err)
		require.Equal(t, []string{"merge upstream", "a change"}, subjects)
	})

	t.Run("empty range for identical revisions", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		tip, err := s.Scene.Repo.GetRevision("main")
		require.NoError(t, err)

		shas, err := git.GetCommitRangeSHAs(tip, "main")
		require.NoError(t, err)
		require.Empty(t, shas)
	})
}
