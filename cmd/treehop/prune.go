package main

import (
	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
)

func newPruneCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "prune",
		Short:   "Clean up worktrees whose directory is gone",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Clean up after worktree directories that were deleted by hand.

Drops git's records of worktrees whose directory no longer exists and
removes switch history entries that point at missing directories, so
"treehop switch --last" never lands on them.`,
		Example: `  treehop prune          # Clean up the current repository
  treehop prune --json   # Report what was cleaned as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}

			result, err := mgr.Prune(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				return out.JSON(result)
			}
			if len(result.Pruned) == 0 && result.HistoryRemoved == 0 {
				log.FromContext(ctx).Println("Nothing to prune")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
