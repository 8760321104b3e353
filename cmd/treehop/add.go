package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
	"github.com/treehop/treehop/internal/ui/prompt"
	"github.com/treehop/treehop/internal/worktree"
)

func newAddCmd() *cobra.Command {
	var (
		path        string
		base        string
		fromCurrent bool
		commitIsh   string
		detach      bool
		jsonOutput  bool
		hf          hookFlags
	)

	cmd := &cobra.Command{
		Use:               "add [branch]",
		Short:             "Create a worktree",
		Aliases:           []string{"a", "new"},
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		Long: `Create a worktree for a branch and print its path.

An existing branch is checked out into the new worktree. A branch that
does not exist yet needs a base: pass --base or --from-current, or pick
one from the list when running in a terminal. A branch already checked
out elsewhere is not added twice; its worktree path is printed instead.

The path defaults to the branch name with "/" replaced by "-". A path
without a separator is placed under base_directory when one is set.

With --detach no branch is used and the worktree points at --commit
(HEAD when omitted).`,
		Example: `  treehop add feature-x                    # Existing branch
  treehop add feature-y --base main        # New branch from main
  treehop add feature-z --from-current     # New branch from the current branch
  treehop add fix --path ../repo-fix       # Explicit path
  treehop add --detach --path /tmp/review --commit v1.2.0
  cd "$(treehop add feature-x)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var branch string
			if len(args) == 1 {
				branch = args[0]
			}

			if detach {
				if branch != "" {
					return fmt.Errorf("--detach does not take a branch")
				}
				if path == "" {
					return fmt.Errorf("--path is required with --detach")
				}
			} else if branch == "" {
				if !isTerminal(cmd.InOrStdin()) {
					return fmt.Errorf("branch is required")
				}
				result, err := prompt.TextInput("Branch name:", "feature-x")
				if err != nil {
					return err
				}
				if result.Cancelled {
					return worktree.ErrCancelled
				}
				branch = result.Value
			}

			hookOpts, err := hf.options(cmd.InOrStdin())
			if err != nil {
				return err
			}

			if fromCurrent {
				current, err := git.CurrentBranch(ctx, workDirFromContext(ctx))
				if err != nil {
					return fmt.Errorf("get current branch: %w", err)
				}
				if current == "" {
					return fmt.Errorf("--from-current: HEAD is detached")
				}
				base = current
			}

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}

			opts := worktree.CreateOptions{
				Path:       path,
				Branch:     branch,
				CommitIsh:  commitIsh,
				BaseBranch: base,
				Hooks:      hookOpts,
			}

			result, err := mgr.Create(ctx, opts)
			if errors.Is(err, worktree.ErrAmbiguousBase) && isTerminal(cmd.InOrStdin()) {
				opts.BaseBranch, err = pickBase(cmd, mgr, branch)
				if err != nil {
					return err
				}
				result, err = mgr.Create(ctx, opts)
			}
			if errors.Is(err, worktree.ErrAmbiguousBase) {
				return fmt.Errorf("%w (use --base or --from-current)", err)
			}
			if err != nil {
				return err
			}

			l.Debug("create finished", "path", result.Path, "new_branch", result.NewBranch, "already_exists", result.AlreadyExists)

			if jsonOutput {
				return out.JSON(result)
			}
			out.Println(result.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Worktree path (default: branch name)")
	cmd.Flags().StringVar(&base, "base", "", "Base branch to create a new branch from")
	cmd.Flags().BoolVar(&fromCurrent, "from-current", false, "Create a new branch from the current branch")
	cmd.Flags().StringVar(&commitIsh, "commit", "", "Commit to check out with --detach")
	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "Create a detached worktree")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagsMutuallyExclusive("base", "from-current")
	cmd.MarkFlagsMutuallyExclusive("detach", "base")
	cmd.MarkFlagsMutuallyExclusive("detach", "from-current")
	hf.register(cmd)

	cmd.RegisterFlagCompletionFunc("base", completeBranches)

	return cmd
}

// pickBase asks the user which local branch a new branch should start from.
func pickBase(cmd *cobra.Command, mgr *worktree.Manager, branch string) (string, error) {
	branches, err := mgr.Branches(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(branches) == 0 {
		return "", fmt.Errorf("%w: %s (no local branches to start from)", worktree.ErrAmbiguousBase, branch)
	}

	options := make([]prompt.Option, len(branches))
	for i, b := range branches {
		options[i] = prompt.Option{Label: b.Name, Detail: b.WorktreePath}
	}

	result, err := prompt.Select(fmt.Sprintf("Branch %s does not exist. Create it from:", branch), options)
	if err != nil {
		return "", err
	}
	if result.Cancelled {
		return "", worktree.ErrCancelled
	}
	return result.Value, nil
}
