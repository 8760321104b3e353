package git

import (
	"context"
	"errors"
	"strings"

	"github.com/treehop/treehop/internal/cmd"
)

// AddOptions shapes a `git worktree add` invocation.
type AddOptions struct {
	Path string

	// Branch to check out. With NewBranch set it is created from StartPoint.
	Branch    string
	NewBranch bool

	// StartPoint is the base for a new branch or the commit for a detached
	// worktree. Empty means HEAD.
	StartPoint string

	// Detach creates a worktree with a detached HEAD; Branch is ignored.
	Detach bool
}

// Args returns the git arguments for opts, without -C.
//
//	worktree add -b <branch> <path> [<start>]
//	worktree add --detach <path> [<start>]
//	worktree add <path> <branch>
func (o AddOptions) Args() []string {
	args := []string{"worktree", "add"}
	switch {
	case o.Detach || o.Branch == "":
		args = append(args, "--detach", o.Path)
		if o.StartPoint != "" {
			args = append(args, o.StartPoint)
		}
	case o.NewBranch:
		args = append(args, "-b", o.Branch, o.Path)
		if o.StartPoint != "" {
			args = append(args, o.StartPoint)
		}
	default:
		args = append(args, o.Path, o.Branch)
	}
	return args
}

// AddWorktree runs `git worktree add` in the repository at dir.
// On failure the returned *cmd.Error holds git's stderr.
func AddWorktree(ctx context.Context, dir string, opts AddOptions) error {
	return runGit(ctx, dir, opts.Args()...)
}

// RemoveArgs returns the git arguments for removing path, without -C.
// A forced removal passes --force twice, which git needs to remove a
// locked worktree as well as a modified one.
func RemoveArgs(path string, force bool) []string {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force", "--force")
	}
	return append(args, path)
}

// RemoveWorktree runs `git worktree remove [--force --force] <path>`.
func RemoveWorktree(ctx context.Context, dir, path string, force bool) error {
	return runGit(ctx, dir, RemoveArgs(path, force)...)
}

// PruneWorktrees removes administrative data for worktrees whose
// directories are gone.
func PruneWorktrees(ctx context.Context, dir string) error {
	return runGit(ctx, dir, "worktree", "prune")
}

// dirtyMarkers are fragments of git's refusals to remove a worktree that
// a forced removal would get past.
var dirtyMarkers = []string{
	"contains modified or untracked files",
	"locked working tree",
	"use --force",
	"remove -f -f",
}

// IsDirtyError reports whether err is git refusing to remove a worktree
// because it has local changes or is locked.
func IsDirtyError(err error) bool {
	var cmdErr *cmd.Error
	if !errors.As(err, &cmdErr) {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	for _, marker := range dirtyMarkers {
		if strings.Contains(stderr, marker) {
			return true
		}
	}
	return false
}

// Repo binds the package functions to one repository directory.
type Repo struct {
	Dir string
}

// NewRepo returns a Repo rooted at dir. An empty dir means the working
// directory.
func NewRepo(dir string) *Repo {
	return &Repo{Dir: dir}
}

func (r *Repo) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	return ListWorktrees(ctx, r.Dir)
}

func (r *Repo) BranchExists(ctx context.Context, name string) (bool, error) {
	return BranchExists(ctx, r.Dir, name)
}

func (r *Repo) ListBranches(ctx context.Context) ([]BranchRef, error) {
	return ListBranches(ctx, r.Dir)
}

func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	return CurrentBranch(ctx, r.Dir)
}

func (r *Repo) AddWorktree(ctx context.Context, opts AddOptions) error {
	return AddWorktree(ctx, r.Dir, opts)
}

func (r *Repo) RemoveWorktree(ctx context.Context, path string, force bool) error {
	return RemoveWorktree(ctx, r.Dir, path, force)
}

func (r *Repo) PruneWorktrees(ctx context.Context) error {
	return PruneWorktrees(ctx, r.Dir)
}

func (r *Repo) IsWorktreeDirty(ctx context.Context, path string) (bool, error) {
	return IsWorktreeDirty(ctx, path)
}

func (r *Repo) MainRepoPath(ctx context.Context) (string, error) {
	return MainRepoPath(ctx, r.Dir)
}
