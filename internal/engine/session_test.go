package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/engine"
	"stackup.dev/stackup/testhelpers"
	"stackup.dev/stackup/testhelpers/scenario"
)

func TestSession(t *testing.T) {
	t.Run("load returns nil when no pass is in flight", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		session, err := s.Engine.LoadSession(s.Context.Context)
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("save and load round-trips", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		ctx := s.Context.Context

		saved := &engine.Session{
			StartingBranch:   "feature",
			StartingUpstream: "origin/main",
			Queue:            []string{"a", "b", "c"},
			Stalled:          "a",
			StalledOnto:      "0123456789012345678901234567890123456789",
			Frozen:           true,
		}
		require.NoError(t, s.Engine.SaveSession(ctx, saved))

		loaded, err := s.Engine.LoadSession(ctx)
		require.NoError(t, err)
		require.Equal(t, saved, loaded)
	})

	t.Run("save replaces the previous queue", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		ctx := s.Context.Context

		require.NoError(t, s.Engine.SaveSession(ctx, &engine.Session{
			StartingBranch: "feature",
			Queue:          []string{"a", "b", "c"},
		}))
		require.NoError(t, s.Engine.SaveSession(ctx, &engine.Session{
			StartingBranch: "feature",
			Queue:          []string{"b"},
		}))

		loaded, err := s.Engine.LoadSession(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"b"}, loaded.Queue)
		require.Empty(t, loaded.Stalled)
		require.False(t, loaded.Frozen)
	})

	t.Run("clear removes the session", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		ctx := s.Context.Context

		require.NoError(t, s.Engine.SaveSession(ctx, &engine.Session{
			StartingBranch: "feature",
			Queue:          []string{"a"},
			Frozen:         true,
		}))
		require.NoError(t, s.Engine.ClearSession(ctx))

		session, err := s.Engine.LoadSession(ctx)
		require.NoError(t, err)
		require.Nil(t, session)
	})
}
