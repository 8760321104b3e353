package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// BranchRef is a local branch, annotated with the worktree that has it
// checked out (if any).
type BranchRef struct {
	Name             string `json:"name"`
	ExistsAsWorktree bool   `json:"exists_as_worktree"`
	WorktreePath     string `json:"worktree_path,omitempty"`
}

// BranchExists reports whether a local branch with exactly this name exists.
// `git branch --list` treats its argument as a pattern, so output is compared
// line by line rather than trusting a non-empty result.
func BranchExists(ctx context.Context, dir, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	out, err := outputGit(ctx, dir, "branch", "--list", "--format=%(refname:short)", name)
	if err != nil {
		return false, fmt.Errorf("failed to list branches: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// ListBranches returns all local branches, marking the ones checked out
// in a worktree.
func ListBranches(ctx context.Context, dir string) ([]BranchRef, error) {
	out, err := outputGit(ctx, dir, "branch", "--list", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	checkedOut := make(map[string]string)
	worktrees, err := ListWorktrees(ctx, dir)
	if err != nil && err != ErrNoWorktrees {
		return nil, err
	}
	for _, wt := range worktrees {
		if wt.Branch != "" {
			checkedOut[wt.Branch] = wt.Path
		}
	}

	var branches []BranchRef
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		// "(HEAD detached at ...)" shows up in some git versions
		if name == "" || strings.HasPrefix(name, "(") {
			continue
		}
		path, ok := checkedOut[name]
		branches = append(branches, BranchRef{
			Name:             name,
			ExistsAsWorktree: ok,
			WorktreePath:     path,
		})
	}
	return branches, nil
}

// CurrentBranch returns the branch checked out at dir.
// Returns an empty string for a detached HEAD.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "HEAD" {
		return "", nil
	}
	return branch, nil
}

// IsWorktreeDirty reports whether the worktree at path has uncommitted
// or untracked changes.
func IsWorktreeDirty(ctx context.Context, path string) (bool, error) {
	out, err := outputGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// MainRepoPath returns the main repository path for dir.
// Works whether dir is the main checkout, one of its worktrees or a bare
// repository. For a bare layout (proj/.bare next to a proj/.git file) the
// project directory is returned.
func MainRepoPath(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	commonDir := strings.TrimSpace(string(out))
	if commonDir == "" {
		return "", fmt.Errorf("not a git repository: empty git dir for %s", dir)
	}
	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(dir, commonDir)
	}
	return mainRepoFromCommonDir(filepath.Clean(commonDir)), nil
}

// mainRepoFromCommonDir maps a git common dir to the repository root.
// <repo>/.git belongs to <repo>; a hidden bare dir such as proj/.bare
// belongs to proj; any other bare dir is the repository itself.
func mainRepoFromCommonDir(commonDir string) string {
	if strings.HasPrefix(filepath.Base(commonDir), ".") {
		return filepath.Dir(commonDir)
	}
	return commonDir
}
