package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/git"
	"stackup.dev/stackup/testhelpers"
	"stackup.dev/stackup/testhelpers/scenario"
)

func TestConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("get of a missing key returns empty without error", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		value, err := git.ConfigGet(ctx, "stackup.does-not-exist")
		require.NoError(t, err)
		require.Empty(t, value)
	})

	t.Run("set and get round-trips", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.NoError(t, git.ConfigSet(ctx, "branch.feature.upstream", "origin/main"))
		value, err := git.ConfigGet(ctx, "branch.feature.upstream")
		require.NoError(t, err)
		require.Equal(t, "origin/main", value)
	})

	t.Run("add builds a multi-valued key in order", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.NoError(t, git.ConfigAdd(ctx, "stackup.rebase-update.queue", "a"))
		require.NoError(t, git.ConfigAdd(ctx, "stackup.rebase-update.queue", "b"))

		values, err := git.ConfigGetAll(ctx, "stackup.rebase-update.queue")
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, values)
	})

	t.Run("unset of a missing key is not an error", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.NoError(t, git.ConfigUnset(ctx, "stackup.does-not-exist"))
	})

	t.Run("unset removes every value of a multi-valued key", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.NoError(t, git.ConfigAdd(ctx, "stackup.rebase-update.queue", "a"))
		require.NoError(t, git.ConfigAdd(ctx, "stackup.rebase-update.queue", "b"))
		require.NoError(t, git.ConfigUnset(ctx, "stackup.rebase-update.queue"))

		values, err := git.ConfigGetAll(ctx, "stackup.rebase-update.queue")
		require.NoError(t, err)
		require.Empty(t, values)
	})

	t.Run("get-regexp returns key value pairs", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.NoError(t, git.ConfigSet(ctx, "branch.a.upstream", "origin/main"))
		require.NoError(t, git.ConfigSet(ctx, "branch.b.upstream", "a"))
		require.NoError(t, git.ConfigSet(ctx, "branch.a.base", "abc123"))

		pairs, err := git.ConfigGetRegexp(ctx, `^branch\..*\.upstream$`)
		require.NoError(t, err)
		require.Equal(t, [][2]string{
			{"branch.a.upstream", "origin/main"},
			{"branch.b.upstream", "a"},
		}, pairs)
	})

	t.Run("get-regexp with no matches returns nothing", func(t *testing.T) {
		scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		pairs, err := git.ConfigGetRegexp(ctx, `^stackup\.nothing\..*$`)
		require.NoError(t, err)
		require.Empty(t, pairs)
	})
}
