package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	stackuperrors "stackup.dev/stackup/internal/errors"
)

// Repository wraps a go-git repository
type Repository struct {
	*gogit.Repository
	path string
}

// OpenRepository opens a git repository at the given path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

var defaultRepo *Repository

// InitDefaultRepo initializes the default repository from the runner's
// working directory (or the current directory when unset).
func InitDefaultRepo() error {
	root, err := GetRepoRoot()
	if err != nil {
		return err
	}

	if defaultRepo != nil && defaultRepo.path == root {
		return nil
	}

	repo, err := OpenRepository(root)
	if err != nil {
		return err
	}

	defaultRepo = repo
	return nil
}

// ResetDefaultRepo drops the cached repository so the next call reopens it.
// Tests use this after moving the runner between repositories.
func ResetDefaultRepo() {
	defaultRepo = nil
}

// GetDefaultRepo returns the default repository, opening it if the runner's
// working directory moved since the last call.
func GetDefaultRepo() (*Repository, error) {
	if err := InitDefaultRepo(); err != nil {
		return nil, err
	}
	return defaultRepo, nil
}

// GetRepoRoot returns the root directory of the repository
func GetRepoRoot() (string, error) {
	root, err := RunGitCommand("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return root, nil
}

// resolveRefHash resolves a revision (branch name, remote ref, tag or hash)
// to a commit hash.
func resolveRefHash(repo *Repository, name string) (plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	return *hash, nil
}

// GetCurrentBranch returns the name of the currently checked out branch.
// Returns ErrNotOnBranch when HEAD is detached.
func GetCurrentBranch() (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", stackuperrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// GetAllBranchNames returns all local branch names in the repository
func GetAllBranchNames() ([]string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}

	branches, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	return names, nil
}

// BranchExists reports whether a local branch with the given name exists
func BranchExists(branchName string) bool {
	repo, err := GetDefaultRepo()
	if err != nil {
		return false
	}
	_, err = repo.Reference(plumbing.NewBranchReferenceName(branchName), true)
	return err == nil
}

// GetRevision resolves a revision to its commit hash
func GetRevision(rev string) (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}
	hash, err := resolveRefHash(repo, rev)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}
