package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/output"
	"github.com/treehop/treehop/internal/ui/prompt"
	"github.com/treehop/treehop/internal/worktree"
)

func newRemoveCmd() *cobra.Command {
	var (
		force      bool
		jsonOutput bool
		hf         hookFlags
	)

	cmd := &cobra.Command{
		Use:               "remove [path|branch]",
		Short:             "Delete a worktree",
		Aliases:           []string{"rm", "delete"},
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktrees,
		Long: `Delete a worktree and its directory.

Asks for confirmation unless confirm_deletions = false. Only an answer
starting with y or Y deletes; anything else cancels.

A worktree with local changes or a lock is only deleted with --force or
after "treehop force". The force flag is cleared by the next successful
delete. The branch itself is kept.`,
		Example: `  treehop remove feature-x        # Delete by branch
  treehop remove ../repo-fix      # Delete by path
  treehop remove -f feature-x     # Discard local changes
  echo y | treehop remove old     # Confirm from a script`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}

			var target string
			switch {
			case len(args) == 1:
				target = args[0]
			case isTerminal(cmd.InOrStdin()):
				target, err = pickWorktree(cmd, mgr, "Delete worktree:")
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("worktree path or branch is required")
			}

			hookOpts, err := hf.options(cmd.InOrStdin())
			if err != nil {
				return err
			}

			result, err := mgr.Delete(ctx, target, worktree.DeleteOptions{Force: force, Hooks: hookOpts})
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even with local changes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	hf.register(cmd)

	return cmd
}

// pickWorktree lets the user choose one of the repository's worktrees and
// returns its path.
func pickWorktree(cmd *cobra.Command, mgr *worktree.Manager, title string) (string, error) {
	worktrees, err := mgr.List(cmd.Context())
	if err != nil {
		return "", err
	}

	options := make([]prompt.Option, len(worktrees))
	for i, wt := range worktrees {
		options[i] = prompt.Option{Label: worktreeLabel(wt), Detail: wt.Path}
	}

	result, err := prompt.Select(title, options)
	if err != nil {
		return "", err
	}
	if result.Cancelled {
		return "", worktree.ErrCancelled
	}
	return worktrees[result.Index].Path, nil
}

// worktreeLabel names a worktree by its branch, or its commit when detached.
func worktreeLabel(wt git.Worktree) string {
	if wt.Branch == "" {
		return fmt.Sprintf("(detached at %s)", wt.Commit)
	}
	return wt.Branch
}
