package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Hook defines a command run after a worktree operation
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description,omitempty"`
	On          []string `toml:"on,omitempty"`      // operations this hook runs on (empty = only via --hook)
	Enabled     *bool    `toml:"enabled,omitempty"` // false in .treehop.toml disables a global hook
}

// IsEnabled reports whether the hook is enabled. Hooks are enabled unless explicitly disabled.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// Config holds the treehop configuration
type Config struct {
	ConfirmDeletions bool        `toml:"confirm_deletions"`
	BaseDirectory    string      `toml:"base_directory"`
	Hooks            HooksConfig `toml:"-"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ConfirmDeletions: true,
		Hooks:            HooksConfig{Hooks: map[string]Hook{}},
	}
}

// EnvConfigPath overrides the location of the global config file.
const EnvConfigPath = "TREEHOP_CONFIG"

// EnvBaseDirectory overrides base_directory.
const EnvBaseDirectory = "TREEHOP_BASE_DIR"

// Path returns the path to the global config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "treehop", "config.toml"), nil
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	ConfirmDeletions *bool          `toml:"confirm_deletions"`
	BaseDirectory    string         `toml:"base_directory"`
	Hooks            map[string]any `toml:"hooks"`
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default())
	}
	return LoadFile(path)
}

// LoadFile reads config from path, applying defaults and env overrides.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(Default())
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if raw.ConfirmDeletions != nil {
		cfg.ConfirmDeletions = *raw.ConfirmDeletions
	}
	cfg.BaseDirectory = raw.BaseDirectory
	cfg.Hooks = parseHooksConfig(raw.Hooks)

	if err := validate(&cfg, path); err != nil {
		return Default(), err
	}

	return applyEnv(cfg)
}

// applyEnv overlays environment overrides and expands ~ in directories.
func applyEnv(cfg Config) (Config, error) {
	if dir := os.Getenv(EnvBaseDirectory); dir != "" {
		if err := ValidatePath(dir, EnvBaseDirectory); err != nil {
			return Default(), err
		}
		cfg.BaseDirectory = dir
	}

	expanded, err := ExpandPath(cfg.BaseDirectory)
	if err != nil {
		return Default(), fmt.Errorf("expand base_directory: %w", err)
	}
	cfg.BaseDirectory = expanded
	return cfg, nil
}

// parseHooksConfig extracts HooksConfig from raw TOML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for key, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		hc.Hooks[key] = hook
	}

	return hc
}

type ctxKey struct{}

// WithConfig attaches cfg to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or defaults if none is attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

const defaultConfig = `# treehop configuration

# Ask for confirmation before removing a worktree.
# confirm_deletions = true

# Directory for new worktrees given as a bare name ("treehop add feature-x").
# Names containing a path separator are used as given.
# Must be an absolute path or start with ~
# base_directory = "~/worktrees"

# Hooks - run commands after worktree operations
# Use --hook=name to run a specific hook, --no-hook to skip all hooks
#
# Hooks with "on" run automatically for matching operations.
# Hooks without "on" only run when explicitly called with --hook=name.
#
# [hooks.editor]
# command = "code {path}"
# description = "Open VS Code"
# on = ["create"]
#
# [hooks.tmux]
# command = "tmux rename-window {branch}"
# on = ["switch"]
#
# [hooks.log]
# command = "echo 'removed {path}' >> ~/.treehop/removed.log"
# on = ["delete"]
#
# Available "on" values: "create", "switch", "delete", "all"
#
# Hooks run with the working directory set to the worktree path.
# For "delete" hooks the working directory is the main repo.
#
# Available placeholders:
#   {path}      - absolute worktree path
#   {branch}    - branch name
#   {repo}      - main repo folder name
#   {main-repo} - main repo path
#   {trigger}   - operation that triggered the hook
#   {key}       - custom variable passed via --arg key=value
#   {key:-def}  - custom variable with default value if not provided
`

// Init creates a default config file at path.
// If force is true, overwrites an existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}

// Encode writes cfg as TOML, including hooks as [hooks.NAME] tables.
func Encode(w io.Writer, cfg *Config) error {
	type view struct {
		ConfirmDeletions bool            `toml:"confirm_deletions"`
		BaseDirectory    string          `toml:"base_directory,omitempty"`
		Hooks            map[string]Hook `toml:"hooks,omitempty"`
	}
	return toml.NewEncoder(w).Encode(view{
		ConfirmDeletions: cfg.ConfirmDeletions,
		BaseDirectory:    cfg.BaseDirectory,
		Hooks:            cfg.Hooks.Hooks,
	})
}
