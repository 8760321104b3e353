package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
	"github.com/treehop/treehop/internal/ui/static"
	"github.com/treehop/treehop/internal/worktree"
)

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		noStatus   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the worktrees of the current repository.

The bare entry of a bare-repo layout is never listed. STATUS marks the
main checkout and worktrees with local changes, locks or a missing
directory. --no-status skips the per-worktree git status check.`,
		Example: `  treehop list               # Table of worktrees
  treehop list --json        # Output as JSON
  treehop list --no-status   # Skip dirty checks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}

			list := mgr.ListStatus
			if noStatus {
				list = mgr.List
			}
			worktrees, err := list(ctx)
			if errors.Is(err, worktree.ErrNoWorktrees) {
				worktrees = []git.Worktree{}
			} else if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(worktrees)
			}

			if len(worktrees) == 0 {
				log.FromContext(ctx).Println("No worktrees found")
				return nil
			}
			out.Print(static.RenderWorktrees(worktrees))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noStatus, "no-status", false, "Skip checking worktrees for local changes")

	return cmd
}
