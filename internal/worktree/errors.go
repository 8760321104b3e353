package worktree

import (
	"errors"
	"fmt"

	"github.com/treehop/treehop/internal/git"
)

var (
	// ErrNoWorktrees is returned by List when the repository has no
	// non-bare worktree.
	ErrNoWorktrees = git.ErrNoWorktrees

	// ErrAmbiguousBase is returned by Create when the branch does not
	// exist and no base branch was given to create it from.
	ErrAmbiguousBase = errors.New("branch does not exist and no base branch was given")

	// ErrInvalidWorktree is returned when the target is not a worktree
	// of the repository or its directory is gone.
	ErrInvalidWorktree = errors.New("not a valid worktree")

	// ErrDirtyWorktree is returned when git refuses an unforced delete.
	ErrDirtyWorktree = errors.New("worktree has modified or untracked files or is locked")

	// ErrCancelled is returned by confirmers and pickers when the user
	// backs out.
	ErrCancelled = errors.New("cancelled")
)

// CreateError reports a failed `git worktree add`.
type CreateError struct {
	Path   string
	Branch string
	Output string // git's diagnostic output
	Err    error
}

func (e *CreateError) Error() string {
	target := e.Path
	if e.Branch != "" {
		target = fmt.Sprintf("%s (%s)", e.Path, e.Branch)
	}
	if e.Output != "" {
		return fmt.Sprintf("failed to create worktree %s: %s", target, e.Output)
	}
	return fmt.Sprintf("failed to create worktree %s: %v", target, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
