package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stackup.dev/stackup/internal/utils"
)

func TestValidateBranchName(t *testing.T) {
	valid := []string{
		"feature",
		"feature-123",
		"user/feature_branch",
		"release/v1.2.3",
	}
	for _, name := range valid {
		require.NoError(t, utils.ValidateBranchName(name), name)
	}

	invalid := []string{
		"",
		"has space",
		"has~tilde",
		"has:colon",
		"-starts-with-dash",
		".starts-with-dot",
		"ends-with-dot.",
		"ends-with-slash/",
		"double..dot",
	}
	for _, name := range invalid {
		require.Error(t, utils.ValidateBranchName(name), name)
	}
}

func TestIsInteractive(t *testing.T) {
	t.Setenv("STACKUP_NON_INTERACTIVE", "true")
	require.False(t, utils.IsInteractive())
}
