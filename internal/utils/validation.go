// Package utils provides small shared helpers: branch-name validation and
// terminal interactivity detection.
package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
)

// branchNameRegex matches valid branch name characters: letters, numbers,
// -, _, / and .
var branchNameRegex = regexp.MustCompile(`^[-_/.a-zA-Z0-9]+$`)

// ValidateBranchName rejects names git itself would refuse or that would
// collide with the metadata key layout.
func ValidateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if !branchNameRegex.MatchString(name) {
		return fmt.Errorf("branch name %q contains invalid characters", name)
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, ".") {
		return fmt.Errorf("branch name %q cannot start with %q", name, name[:1])
	}
	if strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name %q cannot end with %q", name, name[len(name)-1:])
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name %q cannot contain \"..\"", name)
	}
	return nil
}

// IsInteractive checks if we're in an interactive terminal
func IsInteractive() bool {
	if os.Getenv("STACKUP_NON_INTERACTIVE") != "" {
		return false
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
