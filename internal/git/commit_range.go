package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// iterateCommits collects commits reachable from head but not from base,
// newest first, matching rev-list base..head semantics. The walk excludes
// every ancestor of base, not just base itself, so a merge commit on the
// branch does not pull upstream history into the range.
func iterateCommits(repo *Repository, headHash, baseHash plumbing.Hash) ([]*object.Commit, error) {
	excluded := make(map[plumbing.Hash]bool)
	if !baseHash.IsZero() {
		queue := []plumbing.Hash{baseHash}
		for len(queue) > 0 {
			hash := queue[0]
			queue = queue[1:]
			if excluded[hash] {
				continue
			}
			excluded[hash] = true

			commit, err := repo.CommitObject(hash)
			if err != nil {
				return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
			}
			queue = append(queue, commit.ParentHashes...)
		}
	}

	var commits []*object.Commit
	visited := make(map[plumbing.Hash]bool)

	queue := []plumbing.Hash{headHash}
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]

		if visited[hash] || excluded[hash] {
			continue
		}
		visited[hash] = true

		commit, err := repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}

		commits = append(commits, commit)

		for _, parentHash := range commit.ParentHashes {
			if !visited[parentHash] && !excluded[parentHash] {
				queue = append(queue, parentHash)
			}
		}
	}

	return commits, nil
}

// GetCommitRangeSHAs returns the commit hashes in base..head, newest first
func GetCommitRangeSHAs(base, head string) ([]string, error) {
	commits, err := commitRange(base, head)
	if err != nil {
		return nil, err
	}

	shas := make([]string, 0, len(commits))
	for _, commit := range commits {
		shas = append(shas, commit.Hash.String())
	}
	return shas, nil
}

// GetCommitRangeSubjects returns the first lines of the commit messages in
// base..head, newest first
func GetCommitRangeSubjects(base, head string) ([]string, error) {
	commits, err := commitRange(base, head)
	if err != nil {
		return nil, err
	}

	subjects := make([]string, 0, len(commits))
	for _, commit := range commits {
		subject := strings.Split(strings.TrimSpace(commit.Message), "\n")[0]
		subjects = append(subjects, strings.TrimSpace(subject))
	}
	return subjects, nil
}

func commitRange(base, head string) ([]*object.Commit, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}

	headHash, err := resolveRefHash(repo, head)
	if err != nil {
		return nil, err
	}

	var baseHash plumbing.Hash
	if base != "" {
		baseHash, err = resolveRefHash(repo, base)
		if err != nil {
			return nil, err
		}
	}

	return iterateCommits(repo, headHash, baseHash)
}

// GetCommitMessage returns the full commit message of a revision
func GetCommitMessage(rev string) (string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return "", err
	}

	hash, err := resolveRefHash(repo, rev)
	if err != nil {
		return "", err
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", rev, err)
	}

	return strings.TrimSpace(commit.Message), nil
}
