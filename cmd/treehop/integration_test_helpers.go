//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
	"github.com/treehop/treehop/internal/storage"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "init", "-b", "main")
	runGitCommand(t, repoPath, "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGitCommand(t, repoPath, "add", "README.md")
	runGitCommand(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// setupWorktree creates a worktree with a new branch.
func setupWorktree(t *testing.T, repoPath, worktreePath, branch string) {
	t.Helper()
	runGitCommand(t, repoPath, "worktree", "add", "-b", branch, worktreePath)
}

// createBranch creates a branch without checking it out.
func createBranch(t *testing.T, repoPath, branch string) {
	t.Helper()
	runGitCommand(t, repoPath, "branch", branch)
}

// makeDirty adds an untracked file to a worktree.
func makeDirty(t *testing.T, worktreePath string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(worktreePath, "dirty.txt"), []byte("dirty\n"), 0644); err != nil {
		t.Fatalf("failed to create dirty file: %v", err)
	}
}

// runGitCommand runs git in dir and returns its output.
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// testContextWithConfigAndOutput returns a command context rooted at
// workDir with cfg attached, a quiet logger, and stdout captured in the
// returned buffer. State files go to a fresh directory.
func testContextWithConfigAndOutput(t *testing.T, cfg *config.Config, workDir string) (context.Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv(storage.EnvStateDir, filepath.Join(t.TempDir(), "state"))

	var out bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, false))
	ctx = output.WithPrinter(ctx, &out)
	ctx = config.WithConfig(ctx, cfg)
	ctx = withWorkDir(ctx, workDir)
	return ctx, &out
}

// testConfig returns defaults with worktrees placed under dir.
func testConfig(dir string, confirm bool) *config.Config {
	cfg := config.Default()
	cfg.ConfirmDeletions = confirm
	cfg.BaseDirectory = dir
	return &cfg
}
