package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
	"github.com/treehop/treehop/internal/worktree"
)

func newSwitchCmd() *cobra.Command {
	var (
		copyToClipboard bool
		last            bool
		hf              hookFlags
	)

	cmd := &cobra.Command{
		Use:               "switch [path|branch]",
		Short:             "Print a worktree path to change into",
		Aliases:           []string{"sw", "cd"},
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeWorktrees,
		Long: `Print the path of a worktree for shell scripting.

Use with shell command substitution: cd "$(treehop switch feature-x)"

The argument is a worktree path or the branch checked out in it. Without
an argument a worktree is picked from a list when running in a terminal.
--last jumps to the most recently switched-to worktree of this repository
other than the one containing the current directory.`,
		Example: `  cd "$(treehop switch feature-x)"   # By branch
  cd "$(treehop switch ../repo-fix)" # By path
  cd "$(treehop switch --last)"      # Back to the previous worktree
  treehop switch --copy feature-x    # Copy path to clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if last && len(args) == 1 {
				return fmt.Errorf("--last does not take an argument")
			}

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}

			var target string
			switch {
			case len(args) == 1:
				target = args[0]
			case last:
				target, err = mgr.Previous(ctx, workDirFromContext(ctx))
				if err != nil {
					return err
				}
				if target == "" {
					return fmt.Errorf("no previous worktree in this repository (use treehop switch <branch> first)")
				}
			case isTerminal(cmd.InOrStdin()):
				target, err = pickWorktree(cmd, mgr, "Switch to worktree:")
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

			result, err := mgr.Switch(ctx, target, worktree.SwitchOptions{Hooks: hookOpts})
			if err != nil {
				return err
			}

			// Copy to clipboard if requested
			if copyToClipboard {
				if err := clipboard.WriteAll(result.Path); err != nil {
					l.Warnf("failed to copy to clipboard: %v", err)
				}
			}

			// Print path
			out.Println(result.Path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")
	cmd.Flags().BoolVarP(&last, "last", "l", false, "Switch to the previous worktree")
	hf.register(cmd)

	return cmd
}
