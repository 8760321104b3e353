package main

import (
	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
	"github.com/treehop/treehop/internal/ui/static"
)

func newBranchesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "branches",
		Short:   "List local branches and their worktrees",
		Aliases: []string{"br"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Example: `  treehop branches          # Table of branches
  treehop branches --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}

			branches, err := mgr.Branches(ctx)
			if err != nil {
				return err
			}
			if branches == nil {
				branches = []git.BranchRef{}
			}

			if jsonOutput {
				return out.JSON(branches)
			}

			if len(branches) == 0 {
				log.FromContext(ctx).Println("No branches found")
				return nil
			}
			out.Print(static.RenderBranches(branches))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
