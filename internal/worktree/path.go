package worktree

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/treehop/treehop/internal/config"
)

// NormalizePath resolves where a worktree is created.
//
// A bare name (no path separator) goes under baseDir when one is
// configured. A leading ~ is expanded. Everything else is made absolute
// relative to the working directory.
func NormalizePath(path, baseDir string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("worktree path is empty")
	}

	if !strings.ContainsRune(path, filepath.Separator) && path != "~" && baseDir != "" {
		base, err := config.ExpandPath(baseDir)
		if err != nil {
			return "", err
		}
		return filepath.Join(base, path), nil
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

// DefaultName derives a directory name from a branch: feature/foo becomes
// feature-foo.
func DefaultName(branch string) string {
	return strings.ReplaceAll(branch, "/", "-")
}
