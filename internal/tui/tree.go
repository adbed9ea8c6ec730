package tui

import (
	"sort"
	"strings"

	"stackup.dev/stackup/internal/engine"
	"stackup.dev/stackup/internal/tui/style"
)

// RenderBranchTree renders the branch dependency graph as an indented tree,
// one subtree per root reference, marking the current branch, dormant
// branches and branches missing a base marker.
func RenderBranchTree(branches []engine.Branch, currentBranch string) string {
	byName := make(map[string]engine.Branch, len(branches))
	for _, branch := range branches {
		byName[branch.Name] = branch
	}

	// Roots of the rendering: the distinct references that are not tracked
	// branches themselves.
	rootSet := make(map[string]bool)
	for _, branch := range branches {
		if _, ok := byName[branch.Upstream]; !ok {
			rootSet[branch.Upstream] = true
		}
	}
	roots := make([]string, 0, len(rootSet))
	for root := range rootSet {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	var b strings.Builder
	for _, root := range roots {
		b.WriteString(style.ColorRootRef(root))
		b.WriteString("\n")
		renderChildren(&b, branches, root, currentBranch, 1)
	}
	return b.String()
}

func renderChildren(b *strings.Builder, branches []engine.Branch, parent, currentBranch string, depth int) {
	for _, child := range engine.Children(branches, parent) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(style.ColorBranchName(child.Name, child.Name == currentBranch))
		if child.Dormant {
			b.WriteString(" " + style.ColorDormant("[dormant]"))
		}
		if child.Base == "" {
			b.WriteString(" " + style.ColorWarning("[no base]"))
		}
		b.WriteString("\n")
		renderChildren(b, branches, child.Name, currentBranch, depth+1)
	}
}
