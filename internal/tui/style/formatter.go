// Package style provides lipgloss styling helpers for stackup output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Render(branchName + " *")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(branchName)
}

// ColorRootRef colors a root reference (remote ref or tag)
func ColorRootRef(ref string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(ref)
}

// ColorDormant colors the dormant marker
func ColorDormant(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorWarning colors warning text yellow
func ColorWarning(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

