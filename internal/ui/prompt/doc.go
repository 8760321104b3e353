// Package prompt provides the interactive prompts of the treehop CLI.
//
// Prompts render to stderr so stdout stays free for piping, e.g.
// cd "$(treehop switch)".
//
// Available prompts:
//   - [Confirm]: yes/no confirmation
//   - [ReadLine]: line-based answer for non-terminal stdin
//   - [TextInput]: single-line text input
//   - [Select]: single selection from a filterable list
package prompt
