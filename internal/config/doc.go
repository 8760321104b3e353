// Package config handles loading and validation of treehop configuration.
//
// Configuration is read from ~/.config/treehop/config.toml (or the file
// named by TREEHOP_CONFIG). A repository may carry a .treehop.toml at its
// root whose settings override the global file for that repository.
//
// # Configuration Sources (highest priority first)
//
//   - TREEHOP_BASE_DIR env var: base directory for new worktrees
//   - .treehop.toml in the main repository
//   - Global config file
//   - Default values
//
// # Key Settings
//
//   - confirm_deletions: ask before removing a worktree (default: true)
//   - base_directory: directory that bare worktree names are created in
//     (must be absolute or start with ~)
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections:
//
//	[hooks.editor]
//	command = "code {path}"
//	description = "Open VS Code"
//	on = ["create", "switch"]
//
// Hooks with "on" run automatically after the matching operation
// (create, switch, delete, or all). Hooks without "on" only run via the
// explicit --hook=name flag.
//
// The Config value is built once at startup and attached to the command
// context with [WithConfig]; nothing mutates it afterwards.
package config
