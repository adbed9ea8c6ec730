package engine

import (
	"sort"
)

// Schedule orders the given branches root-to-leaf: every branch appears
// after its upstream (when the upstream is itself in the set) and before
// its descendants. Dormant branches are excluded. Siblings are ordered
// lexically by name, which keeps the schedule deterministic for a given
// graph. Root references are not part of the ordering.
func Schedule(branches []Branch) []Branch {
	inSet := make(map[string]Branch, len(branches))
	for _, branch := range branches {
		if !branch.Dormant {
			inSet[branch.Name] = branch
		}
	}

	// Roots of the scheduled set: branches whose upstream is not itself a
	// scheduled branch (it is a root reference, a dormant branch, or a
	// branch filtered out of this pass).
	var roots []string
	for name, branch := range inSet {
		if _, ok := inSet[branch.Upstream]; !ok {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)

	var ordered []Branch
	visited := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		ordered = append(ordered, inSet[name])

		var childNames []string
		for childName, child := range inSet {
			if child.Upstream == name {
				childNames = append(childNames, childName)
			}
		}
		sort.Strings(childNames)
		for _, childName := range childNames {
			visit(childName)
		}
	}

	for _, root := range roots {
		visit(root)
	}

	return ordered
}

// Restrict filters branches down to the requested selection: the named
// branches themselves, plus all their descendants when tree is set. An
// empty selection returns the input unchanged.
func Restrict(branches []Branch, selected []string, tree bool) []Branch {
	if len(selected) == 0 {
		return branches
	}

	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
		if tree {
			for _, descendant := range Descendants(branches, name) {
				wanted[descendant.Name] = true
			}
		}
	}

	var result []Branch
	for _, branch := range branches {
		if wanted[branch.Name] {
			result = append(result, branch)
		}
	}
	return result
}
