package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file, placed at the main repo root.
const LocalConfigFileName = ".treehop.toml"

// LocalConfig holds per-repo configuration overrides from .treehop.toml.
// Pointer fields and zero-value strings indicate "not set" (inherit from global).
type LocalConfig struct {
	ConfirmDeletions *bool
	BaseDirectory    string
	Hooks            HooksConfig
}

// rawLocalConfig is used for initial TOML parsing before processing hooks
type rawLocalConfig struct {
	ConfirmDeletions *bool          `toml:"confirm_deletions"`
	BaseDirectory    string         `toml:"base_directory"`
	Hooks            map[string]any `toml:"hooks"`
}

// LoadLocal reads a per-repo .treehop.toml config from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var raw rawLocalConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	local := &LocalConfig{
		ConfirmDeletions: raw.ConfirmDeletions,
		BaseDirectory:    raw.BaseDirectory,
		Hooks:            parseHooksConfig(raw.Hooks),
	}

	if err := ValidatePath(local.BaseDirectory, "base_directory"); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}
	if err := validateHooks(local.Hooks, configFile); err != nil {
		return nil, err
	}

	return local, nil
}

// MergeLocal returns a copy of global with local overrides applied.
// A nil local returns a copy of global unchanged.
// TREEHOP_BASE_DIR still wins over a local base_directory.
func MergeLocal(global *Config, local *LocalConfig) (*Config, error) {
	merged := *global
	merged.Hooks = mergeHooks(global.Hooks, HooksConfig{})
	if local == nil {
		return &merged, nil
	}

	if local.ConfirmDeletions != nil {
		merged.ConfirmDeletions = *local.ConfirmDeletions
	}
	if local.BaseDirectory != "" && os.Getenv(EnvBaseDirectory) == "" {
		expanded, err := ExpandPath(local.BaseDirectory)
		if err != nil {
			return nil, fmt.Errorf("expand base_directory: %w", err)
		}
		merged.BaseDirectory = expanded
	}
	merged.Hooks = mergeHooks(global.Hooks, local.Hooks)

	return &merged, nil
}

// mergeHooks merges local hooks into global hooks.
// Local hooks with the same name override global hooks.
// Local hooks with enabled=false remove the global hook.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{
		Hooks: make(map[string]Hook, len(global.Hooks)),
	}

	maps.Copy(merged.Hooks, global.Hooks)

	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}

	return merged
}
