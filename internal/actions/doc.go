// Package actions provides the high-level operations behind each command:
// creating branches, freezing and thawing uncommitted work, running a
// rebase-update pass, squashing, reparenting and rendering the branch map.
package actions
