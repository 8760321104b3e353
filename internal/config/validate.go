package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ValidHookTriggers are the values accepted in a hook's "on" list.
var ValidHookTriggers = []string{"create", "switch", "delete", "all"}

// validate checks settings that cannot be expressed in the TOML schema.
// source names the file in error messages.
func validate(cfg *Config, source string) error {
	if err := ValidatePath(cfg.BaseDirectory, "base_directory"); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	return validateHooks(cfg.Hooks, source)
}

func validateHooks(hc HooksConfig, source string) error {
	for name, hook := range hc.Hooks {
		if hook.Command == "" && hook.IsEnabled() {
			return fmt.Errorf("%s: hook %q has no command", source, name)
		}
		for _, on := range hook.On {
			if !slices.Contains(ValidHookTriggers, on) {
				return fmt.Errorf("%s: invalid trigger %q for hook %q: must be %s",
					source, on, name, formatOptions(ValidHookTriggers))
			}
		}
	}
	return nil
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
