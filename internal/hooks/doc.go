// Package hooks runs user-defined shell commands after worktree operations.
//
// Hooks are the out-of-process listeners of treehop: once a create, switch
// or delete concludes successfully, every hook whose "on" list names that
// operation (or "all") runs synchronously. A failing hook is reported as a
// warning and never undoes the operation.
//
// Example config:
//
//	[hooks.vscode]
//	command = "code {path}"
//	on = ["create", "switch"]
//
//	[hooks.notify]
//	command = "notify-send 'removed {branch}'"
//	on = ["delete"]
//
//	[hooks.deps]
//	command = "npm install"
//	# no "on" - only runs via --hook=deps
//
// # Placeholders
//
//   - {path}: absolute worktree path
//   - {branch}: branch name (empty for detached worktrees)
//   - {repo}: main repository folder name
//   - {main-repo}: main repository path
//   - {trigger}: create, switch or delete
//
// Custom variables come from --arg key=value: {key}, {key:raw} and
// {key:-default}. Use --arg key=- to read piped stdin into a variable.
//
// Hooks run in the worktree directory, except delete hooks which run in the
// main repository (the worktree is gone by then). Hook output goes to
// stderr so stdout stays machine-readable.
package hooks
