// Package cmd provides helpers for executing external commands with proper error handling.
//
// Every command runs through [exec.CommandContext] so cancelling the
// context (Ctrl-C) stops it, and the logger attached to the context traces
// the invocation when verbose mode is on.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "worktree", "prune"); err != nil {
//	    return fmt.Errorf("prune: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "worktree", "list", "--porcelain")
//
// # Errors
//
// A command that starts but exits non-zero yields an [*Error]. Its message
// is the trimmed stderr of the command, so callers can show it to users as
// is, while [Error.Stderr] and [Error.ExitCode] stay available for
// classification. A binary that cannot be found yields an [*Error] wrapping
// [exec.ErrNotFound].
//
// # Design Notes
//
// treehop shells out to the git CLI rather than using a Go git library.
// This keeps behavior identical to what users see in their terminal
// (SSH keys, credential helpers, hooks, worktree locking).
package cmd
