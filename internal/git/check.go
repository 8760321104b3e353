package git

import (
	"context"
	"errors"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepoPath returns true if the given path is inside a git repository
func IsInsideRepoPath(ctx context.Context, path string) bool {
	err := runGit(ctx, path, "rev-parse", "--git-dir")
	return err == nil
}
