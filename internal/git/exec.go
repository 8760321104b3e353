package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/treehop/treehop/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return notFound(cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...))
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	out, err := cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
	return out, notFound(err)
}

// notFound maps a missing git binary onto ErrGitNotFound.
func notFound(err error) error {
	if err != nil && errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrGitNotFound, err)
	}
	return err
}
