package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/history"
	"github.com/treehop/treehop/internal/hooks"
	"github.com/treehop/treehop/internal/ui/prompt"
	"github.com/treehop/treehop/internal/worktree"
)

// newManager builds a Manager for the repository at the command's working
// directory. The force flag is loaded from and saved to the state dir.
func newManager(cmd *cobra.Command) (*worktree.Manager, error) {
	ctx := cmd.Context()
	workDir := workDirFromContext(ctx)

	if !git.IsInsideRepoPath(ctx, workDir) {
		return nil, fmt.Errorf("%w: %s", errNotInRepo, workDir)
	}

	store, err := worktree.DefaultFileStore()
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	session, err := worktree.LoadSession(store)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	return worktree.New(
		git.NewRepo(workDir),
		config.FromContext(ctx),
		session,
		worktree.WithConfirmer(newConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())),
		worktree.WithHistory(history.DefaultPath()),
	), nil
}

var errNotInRepo = errors.New("not inside a git repository")

// newConfirmer asks with a key-press prompt on a terminal and reads a
// line from in otherwise. Closed input cancels.
func newConfirmer(in io.Reader, out io.Writer) worktree.Confirmer {
	return worktree.ConfirmFunc(func(ctx context.Context, question string) (string, error) {
		if isTerminal(in) {
			result, err := prompt.Confirm(question)
			if err != nil {
				return "", err
			}
			switch {
			case result.Cancelled:
				return "", worktree.ErrCancelled
			case result.Confirmed:
				return "y", nil
			default:
				return "n", nil
			}
		}

		answer, err := prompt.ReadLine(in, out, question)
		if errors.Is(err, io.EOF) {
			return "", worktree.ErrCancelled
		}
		return answer, err
	})
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// hookFlags holds the --hook, --no-hook and --arg flags shared by the
// commands that run hooks.
type hookFlags struct {
	name string
	skip bool
	env  []string
}

func (f *hookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "hook", "", "Run only the named hook")
	cmd.Flags().BoolVar(&f.skip, "no-hook", false, "Skip all hooks")
	cmd.Flags().StringSliceVarP(&f.env, "arg", "a", nil, "Set hook variable KEY=VALUE (KEY=- reads stdin)")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.RegisterFlagCompletionFunc("hook", completeHooks)
}

// options builds the hook options. KEY=- values are read from in.
func (f *hookFlags) options(in io.Reader) (hooks.Options, error) {
	env, err := hooks.ParseEnv(f.env, in)
	if err != nil {
		return hooks.Options{}, err
	}
	return hooks.Options{Name: f.name, Skip: f.skip, Env: env}, nil
}
