// Package git inspects and mutates git worktrees via shell commands.
//
// All operations call the git CLI through package cmd rather than using a
// Go git library. This keeps behavior identical to the user's terminal
// (config, aliases, hooks, worktree locks).
//
// # Inspection
//
//   - [ListWorktrees]: worktrees of a repository, bare entry excluded
//   - [BranchExists], [ListBranches]: local branch queries
//   - [CurrentBranch], [MainRepoPath]: context for hooks and prompts
//
// Listings use `git worktree list --porcelain`. Older gits that reject
// --porcelain fall back to the human-readable column format, parsed by
// [ParseList].
//
// # Mutation
//
//   - [AddWorktree]: `worktree add` for an existing branch, a new branch
//     (-b) or a detached HEAD
//   - [RemoveWorktree]: `worktree remove [--force]`
//
// Failures are [*cmd.Error] values carrying git's stderr. [IsDirtyError]
// recognises the refusals that a forced removal would override.
//
// [Repo] bundles these functions behind a repository path so callers can
// depend on an interface instead of the package functions.
package git
