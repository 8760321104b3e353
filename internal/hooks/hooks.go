package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/log"
)

// shellQuote escapes a string for safe use in shell commands.
// e.g., "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// CommandType identifies the operation triggering the hook.
type CommandType string

const (
	CommandCreate CommandType = "create"
	CommandSwitch CommandType = "switch"
	CommandDelete CommandType = "delete"
)

// Context holds the values for placeholder substitution.
type Context struct {
	Path     string            // absolute worktree path
	Branch   string            // branch name
	Repo     string            // main repo folder name
	MainRepo string            // main repo path
	Trigger  string            // create, switch or delete
	Env      map[string]string // custom variables from --arg key=value
}

// Options selects hooks for one operation, mirroring the --hook and
// --no-hook flags.
type Options struct {
	Name string // run only this hook, regardless of its "on" list
	Skip bool   // run no hooks
	Env  map[string]string
}

// HookMatch represents a hook that matched the current command.
type HookMatch struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is set only that hook runs; otherwise every enabled hook whose
// "on" list matches cmdType. Matches are sorted by name.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, cmdType CommandType) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if hookName != "" {
		hook, exists := cfg.Hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Hook: &hook, Name: hookName}}, nil
	}

	var matches []HookMatch
	for name, hook := range cfg.Hooks {
		if hook.IsEnabled() && len(hook.On) > 0 && hookMatchesCommand(hook, cmdType) {
			hookCopy := hook
			matches = append(matches, HookMatch{Hook: &hookCopy, Name: name})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

// hookMatchesCommand returns true if cmdType is in the hook's "on" list.
// "all" matches every command type.
func hookMatchesCommand(hook config.Hook, cmdType CommandType) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(cmdType) {
			return true
		}
	}
	return false
}

// Run runs every match in workDir. Failures are logged as warnings and
// returned joined so callers can surface them; they never stop the loop.
func Run(ctx context.Context, matches []HookMatch, hc Context, workDir string) []error {
	var errs []error
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hc, workDir); err != nil {
			log.FromContext(ctx).Warnf("hook %q failed: %v", match.Name, err)
			errs = append(errs, fmt.Errorf("hook %q: %w", match.Name, err))
		}
	}
	return errs
}

// runHook executes a single hook with placeholder substitution.
func runHook(ctx context.Context, name string, hook *config.Hook, hc Context, workDir string) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(hook.Command, hc)

	l.Printf("Running hook '%s'...\n", name)
	l.Debug("hook", "name", name, "command", command, "dir", workDir)

	shellCmd := exec.CommandContext(ctx, "sh", "-c", command)
	shellCmd.Dir = workDir
	shellCmd.Stdout = l.Writer()
	shellCmd.Stderr = l.Writer()
	shellCmd.Stdin = os.Stdin

	if err := shellCmd.Run(); err != nil {
		return err
	}

	if hook.Description != "" {
		l.Printf("  ✓ %s\n", hook.Description)
	}
	return nil
}

// readStdinIfPiped reads all content from stdin unless it is a terminal.
// A nil reader or a TTY yields an empty string.
func readStdinIfPiped(stdin io.Reader) (string, error) {
	if stdin == nil {
		return "", nil
	}
	if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ParseEnv parses "key=value" strings into a map. A value of "-" is
// replaced by the content piped on stdin, read once for all such keys.
func ParseEnv(envSlice []string, stdin io.Reader) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", e)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
		} else {
			result[key] = value
		}
	}

	if len(stdinKeys) > 0 {
		content, err := readStdinIfPiped(stdin)
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default}.
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values
// from hc. {key:raw} inserts an env value unquoted.
func SubstitutePlaceholders(command string, hc Context) string {
	replacements := map[string]string{
		"{path}":      shellQuote(hc.Path),
		"{branch}":    shellQuote(hc.Branch),
		"{repo}":      shellQuote(hc.Repo),
		"{main-repo}": shellQuote(hc.MainRepo),
		"{trigger}":   shellQuote(hc.Trigger),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3]

		val, ok := hc.Env[key]
		if !ok {
			val = defaultVal
		}
		if isRaw {
			return val
		}
		return shellQuote(val)
	})
}
