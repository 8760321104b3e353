// Package worktree is the worktree lifecycle engine behind treehop.
//
// A [Manager] creates, switches to and deletes worktrees of one repository
// through a [Backend] (normally *git.Repo). It owns no UI: callers pass a
// [Confirmer] for deletion prompts and read outcomes from the returned
// result structs instead of registering callbacks.
//
// # Force policy
//
// Deletion is gated by a [Session]. The session carries a one-shot force
// flag toggled with [Session.ToggleForce]; the next successful delete runs
// `git worktree remove --force` and clears it. A failed or cancelled delete
// leaves the flag alone. With confirm_deletions enabled every delete asks
// the confirmer first, and only an answer starting with y or Y proceeds.
//
// # Errors
//
//   - [ErrNoWorktrees]: the repository lists no worktree (benign)
//   - [ErrAmbiguousBase]: creating a new branch without a base branch
//   - [*CreateError]: git refused to create the worktree
//   - [ErrInvalidWorktree]: the target is not a live worktree
//   - [ErrDirtyWorktree]: unforced delete of a modified or locked worktree
//   - [ErrCancelled]: the user backed out of a prompt
//
// Git failures not covered above surface as *cmd.Error.
package worktree
