package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/git"
)

// completeBranches provides local branch name completion for the current repo.
func completeBranches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := context.Background()

	branches, err := git.ListBranches(ctx, workDirFromContext(ctx))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, b := range branches {
		if strings.HasPrefix(b.Name, toComplete) {
			matches = append(matches, b.Name)
		}
	}

	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeWorktrees completes branches checked out in a worktree, and
// worktree paths once the input looks like a path.
func completeWorktrees(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := context.Background()

	worktrees, err := git.ListWorktrees(ctx, workDirFromContext(ctx))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	byPath := strings.ContainsAny(toComplete, `/\~.`)

	var matches []string
	for _, wt := range worktrees {
		candidate := wt.Branch
		if byPath || candidate == "" {
			candidate = wt.Path
		}
		if strings.HasPrefix(candidate, toComplete) {
			matches = append(matches, candidate)
		}
	}

	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeHooks provides hook name completion for --hook flag.
func completeHooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(loadConfig(context.Background()))

	var matches []string
	for _, name := range hookNames(cfg) {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}

	return matches, cobra.ShellCompDirectiveNoFileComp
}
