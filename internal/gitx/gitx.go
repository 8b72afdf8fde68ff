// Package gitx wraps the git command line for the staging workflow.
package gitx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotARepository is returned when a path is not inside a git working tree.
var ErrNotARepository = errors.New("not inside a git repository")

// RepoRoot resolves the git repository root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	out, err := ExecRunner{Dir: path}.Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, path)
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", fmt.Errorf("%w: %s", ErrNotARepository, path)
	}
	return root, nil
}

// Service issues the logical git operations the workflow needs through a
// Runner. All calls are synchronous; the caller serializes them.
type Service struct {
	r Runner
}

// NewService wraps a Runner.
func NewService(r Runner) *Service {
	return &Service{r: r}
}

// Status lists the working tree status in input order.
func (s *Service) Status() ([]File, error) {
	out, err := s.r.Run("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return ParseStatus(out), nil
}

// Diff returns the unified diff for a tracked path; staged selects the
// index-vs-HEAD comparison instead of the working tree one.
func (s *Service) Diff(path string, staged bool) (string, error) {
	args := []string{"diff", "--no-color", "--text"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	return s.r.Run(args...)
}

// DiffUntracked diffs an untracked file against /dev/null.
func (s *Service) DiffUntracked(path string) (string, error) {
	out, err := s.r.Run("diff", "--no-color", "--no-index", "--text", "/dev/null", path)
	// `diff --no-index` exits 1 whenever the files differ; with output
	// captured that is the success case.
	if err != nil && out != "" {
		return out, nil
	}
	return out, err
}

// Stage adds a path to the index. -A makes deletions stageable too while
// staying scoped to the pathspec.
func (s *Service) Stage(path string) error {
	_, err := s.r.Run("add", "-A", "--", path)
	return err
}

// Unstage resets a path in the index to HEAD without touching the working copy.
func (s *Service) Unstage(path string) error {
	_, err := s.r.Run("restore", "--staged", "--", path)
	return err
}

// Commit creates a commit with a literal message string.
func (s *Service) Commit(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("empty commit message")
	}
	_, err := s.r.Run("commit", "-m", message)
	return err
}

// CurrentBranch returns the checked-out branch name.
func (s *Service) CurrentBranch() (string, error) {
	return s.r.Run("rev-parse", "--abbrev-ref", "HEAD")
}

// LastCommitSummary returns short hash and subject of the last commit.
func (s *Service) LastCommitSummary() (string, error) {
	return s.r.Run("log", "-1", "--pretty=format:%h %s")
}
