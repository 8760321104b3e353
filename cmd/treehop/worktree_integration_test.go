//go:build integration

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/worktree"
)

// TestList_JSON tests listing worktrees as JSON.
//
// Scenario: User runs `treehop list --json` in a repo with one extra worktree
// Expected: Both worktrees are printed with their branches
func TestList_JSON(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var got []git.Worktree
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out.String(), err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 worktrees, got %d: %+v", len(got), got)
	}
	if got[0].Path != repoPath || got[0].Branch != "main" {
		t.Errorf("first worktree = %+v, want main at %s", got[0], repoPath)
	}
	if got[1].Path != wtPath || got[1].Branch != "feature" {
		t.Errorf("second worktree = %+v, want feature at %s", got[1], wtPath)
	}
	if len(got[1].Commit) != 7 {
		t.Errorf("commit %q should be shortened to 7 characters", got[1].Commit)
	}
}

// TestList_Table tests the default table output.
func TestList_Table(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	setupWorktree(t, repoPath, filepath.Join(tmpDir, "myrepo-feature"), "feature")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	for _, want := range []string{"PATH", "BRANCH", "main", "feature"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

// TestBranches_JSON tests that branches report their worktree.
func TestBranches_JSON(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	createBranch(t, repoPath, "idle")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newBranchesCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("branches command failed: %v", err)
	}

	var got []git.BranchRef
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out.String(), err)
	}

	byName := map[string]git.BranchRef{}
	for _, b := range got {
		byName[b.Name] = b
	}
	if b := byName["feature"]; !b.ExistsAsWorktree || b.WorktreePath != wtPath {
		t.Errorf("feature = %+v, want worktree at %s", b, wtPath)
	}
	if b, ok := byName["idle"]; !ok || b.ExistsAsWorktree {
		t.Errorf("idle = %+v (found %v), want branch without worktree", b, ok)
	}
}

// TestAdd_ExistingBranch tests checking out an existing branch.
//
// Scenario: User runs `treehop add feature` with base_directory set
// Expected: Worktree is created under base_directory and its path printed
func TestAdd_ExistingBranch(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	createBranch(t, repoPath, "feature")
	baseDir := filepath.Join(tmpDir, "worktrees")

	ctx, out := testContextWithConfigAndOutput(t, testConfig(baseDir, false), repoPath)

	cmd := newAddCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	want := filepath.Join(baseDir, "feature")
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("expected path %q, got %q", want, got)
	}
	if _, err := os.Stat(filepath.Join(want, "README.md")); err != nil {
		t.Errorf("worktree not checked out: %v", err)
	}
}

// TestAdd_NewBranchWithBase tests creating a branch from --base.
func TestAdd_NewBranchWithBase(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	baseDir := filepath.Join(tmpDir, "worktrees")

	ctx, out := testContextWithConfigAndOutput(t, testConfig(baseDir, false), repoPath)

	cmd := newAddCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feat/x", "--base", "main"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	want := filepath.Join(baseDir, "feat-x")
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("expected path %q, got %q", want, got)
	}
	if branch := strings.TrimSpace(runGitCommand(t, want, "rev-parse", "--abbrev-ref", "HEAD")); branch != "feat/x" {
		t.Errorf("worktree HEAD = %q, want feat/x", branch)
	}
}

// TestAdd_FromCurrent tests creating a branch from the current branch.
func TestAdd_FromCurrent(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "child")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newAddCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"child", "--from-current", "--path", wtPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != wtPath {
		t.Errorf("expected path %q, got %q", wtPath, got)
	}
}

// TestAdd_AlreadyCheckedOut tests adding a branch that already has a worktree.
//
// Scenario: User runs `treehop add feature` while feature is checked out elsewhere
// Expected: No new worktree; the existing path is printed
func TestAdd_AlreadyCheckedOut(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	baseDir := filepath.Join(tmpDir, "worktrees")

	ctx, out := testContextWithConfigAndOutput(t, testConfig(baseDir, false), repoPath)

	cmd := newAddCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	var result worktree.CreateResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out.String(), err)
	}
	if !result.AlreadyExists || result.Path != wtPath {
		t.Errorf("result = %+v, want existing worktree at %s", result, wtPath)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "feature")); !os.IsNotExist(err) {
		t.Errorf("no worktree should be created under base_directory, stat err = %v", err)
	}
}

// TestAdd_Detached tests creating a detached worktree.
func TestAdd_Detached(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "review")

	ctx, _ := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newAddCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--detach", "--path", wtPath, "--commit", "main"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	worktrees, err := git.ListWorktrees(ctx, repoPath)
	if err != nil {
		t.Fatalf("ListWorktrees failed: %v", err)
	}
	wt, ok := git.FindWorktree(worktrees, wtPath)
	if !ok || !wt.Detached || wt.Branch != "" {
		t.Errorf("detached worktree = %+v (found %v)", wt, ok)
	}
}

// TestAdd_DetachNeedsPath tests flag validation for --detach.
func TestAdd_DetachNeedsPath(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	ctx, _ := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newAddCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--detach"})
	cmd.SetErr(io.Discard)

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for --detach without --path")
	}
}

// TestSwitch_ByBranchAndLast tests switching and jumping back.
//
// Scenario: User switches to feature, then to main, then runs `switch --last` from main
// Expected: --last prints the feature worktree
func TestSwitch_ByBranchAndLast(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	for _, target := range []string{"feature", repoPath} {
		out.Reset()
		cmd := newSwitchCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs([]string{target})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("switch %s failed: %v", target, err)
		}
	}
	if got := strings.TrimSpace(out.String()); got != repoPath {
		t.Errorf("switch by path printed %q, want %q", got, repoPath)
	}

	out.Reset()
	cmd := newSwitchCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--last"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("switch --last failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != wtPath {
		t.Errorf("switch --last printed %q, want %q", got, wtPath)
	}
}

// TestSwitch_Unknown tests switching to a worktree that does not exist.
func TestSwitch_Unknown(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newSwitchCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"nope"})

	err := cmd.Execute()
	if !errors.Is(err, worktree.ErrInvalidWorktree) {
		t.Fatalf("expected ErrInvalidWorktree, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

// TestRemove_Confirmation tests the confirmation answer handling.
//
// Scenario: User runs `treehop remove feature` and answers the prompt
// Expected: Only an answer starting with y deletes the worktree
func TestRemove_Confirmation(t *testing.T) {
	tests := []struct {
		answer      string
		wantDeleted bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"\n", false},
		{" y\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			tmpDir := resolvePath(t, t.TempDir())
			repoPath := setupTestRepo(t, tmpDir, "myrepo")
			wtPath := filepath.Join(tmpDir, "myrepo-feature")
			setupWorktree(t, repoPath, wtPath, "feature")

			ctx, _ := testContextWithConfigAndOutput(t, testConfig("", true), repoPath)

			cmd := newRemoveCmd()
			cmd.SetContext(ctx)
			cmd.SetArgs([]string{"feature"})
			cmd.SetIn(strings.NewReader(tt.answer))
			cmd.SetErr(io.Discard)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("remove command failed: %v", err)
			}

			_, statErr := os.Stat(wtPath)
			if deleted := os.IsNotExist(statErr); deleted != tt.wantDeleted {
				t.Errorf("deleted = %v, want %v", deleted, tt.wantDeleted)
			}
		})
	}
}

// TestRemove_DirtyThenForce tests the force toggle around a dirty worktree.
//
// Scenario: Remove refuses a dirty worktree, user runs `treehop force`, then removes again
// Expected: Second remove succeeds and force mode is back to idle
func TestRemove_DirtyThenForce(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	makeDirty(t, wtPath)

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	remove := func() error {
		cmd := newRemoveCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs([]string{wtPath})
		return cmd.Execute()
	}
	force := func(args ...string) string {
		out.Reset()
		cmd := newForceCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("force command failed: %v", err)
		}
		return strings.TrimSpace(out.String())
	}

	if err := remove(); !errors.Is(err, worktree.ErrDirtyWorktree) {
		t.Fatalf("expected ErrDirtyWorktree, got %v", err)
	}
	if _, err := os.Stat(wtPath); err != nil {
		t.Fatalf("dirty worktree should still exist: %v", err)
	}
	if got := force("--status"); got != "idle" {
		t.Errorf("state after failed remove = %q, want idle", got)
	}

	if got := force(); got != "forced" {
		t.Errorf("state after toggle = %q, want forced", got)
	}

	if err := remove(); err != nil {
		t.Fatalf("forced remove failed: %v", err)
	}
	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree should be deleted, stat err = %v", err)
	}
	if got := force("--status"); got != "idle" {
		t.Errorf("state after successful remove = %q, want idle", got)
	}
}

// TestRemove_ForceFlag tests --force on a dirty worktree.
func TestRemove_ForceFlag(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	makeDirty(t, wtPath)

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature", "--force", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove command failed: %v", err)
	}

	var result worktree.DeleteResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out.String(), err)
	}
	if result.Path != wtPath || !result.Forced || result.Cancelled {
		t.Errorf("result = %+v", result)
	}
}

// TestRemove_MainWorktree tests that the main worktree is never deleted.
func TestRemove_MainWorktree(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	ctx, _ := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"main"})

	if err := cmd.Execute(); !errors.Is(err, worktree.ErrInvalidWorktree) {
		t.Fatalf("expected ErrInvalidWorktree, got %v", err)
	}
	if _, err := os.Stat(repoPath); err != nil {
		t.Errorf("main worktree must remain: %v", err)
	}
}

// TestForce_TogglePersists tests that force mode survives between invocations.
func TestForce_TogglePersists(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	want := []string{"forced", "idle", "forced"}
	for i, w := range want {
		out.Reset()
		cmd := newForceCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs([]string{})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("force command failed: %v", err)
		}
		if got := strings.TrimSpace(out.String()); got != w {
			t.Errorf("toggle %d: state = %q, want %q", i+1, got, w)
		}
	}
}

// TestSwitch_LastFromSubdirectory tests --last from inside a worktree.
//
// Scenario: User switches feature -> main in one repo, then to a worktree of
// another repo, and runs `switch --last` from a subdirectory of feature
// Expected: main of the same repo is printed, not feature or the other repo
func TestSwitch_LastFromSubdirectory(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	otherRepo := setupTestRepo(t, tmpDir, "other")
	otherWt := filepath.Join(tmpDir, "other-feature")
	setupWorktree(t, otherRepo, otherWt, "feature")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)
	otherCtx := withWorkDir(ctx, otherRepo)

	switchTo := func(ctx context.Context, args ...string) string {
		t.Helper()
		out.Reset()
		cmd := newSwitchCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("switch %v failed: %v", args, err)
		}
		return strings.TrimSpace(out.String())
	}

	switchTo(ctx, "feature")
	switchTo(ctx, "main")
	switchTo(otherCtx, "feature")

	sub := filepath.Join(wtPath, "docs", "api")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if got := switchTo(withWorkDir(ctx, sub), "--last"); got != repoPath {
		t.Errorf("switch --last from %s printed %q, want %q", sub, got, repoPath)
	}
	// the other repo's only history entry is the worktree we are in
	out.Reset()
	cmd := newSwitchCmd()
	cmd.SetContext(withWorkDir(ctx, otherWt))
	cmd.SetArgs([]string{"--last"})
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Errorf("switch --last in other repo succeeded with %q, want no previous worktree", out.String())
	}
}

// TestList_Status tests the STATUS information in list output.
func TestList_Status(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	makeDirty(t, wtPath)

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var got []git.Worktree
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out.String(), err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 worktrees, got %+v", got)
	}
	if !got[0].Main || got[0].Dirty {
		t.Errorf("main worktree = %+v, want main and clean", got[0])
	}
	if got[1].Main || !got[1].Dirty {
		t.Errorf("feature worktree = %+v, want dirty", got[1])
	}

	out.Reset()
	cmd = newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json", "--no-status"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list --no-status failed: %v", err)
	}
	if strings.Contains(out.String(), `"dirty"`) {
		t.Errorf("--no-status output reports dirty state:\n%s", out.String())
	}
}

// TestList_NotInRepo tests running outside any repository.
func TestList_NotInRepo(t *testing.T) {
	ctx, _ := testContextWithConfigAndOutput(t, testConfig("", false), resolvePath(t, t.TempDir()))

	cmd := newListCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); !errors.Is(err, errNotInRepo) {
		t.Fatalf("expected errNotInRepo, got %v", err)
	}
}

// TestPrune_DeletedDirectory tests cleaning up a worktree removed by hand.
//
// Scenario: User switches to feature, deletes its directory with rm -rf, runs `treehop prune`
// Expected: git forgets the worktree and history drops the entry
func TestPrune_DeletedDirectory(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")

	ctx, out := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	sw := newSwitchCmd()
	sw.SetContext(ctx)
	sw.SetArgs([]string{"feature"})
	if err := sw.Execute(); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if err := os.RemoveAll(wtPath); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	cmd := newPruneCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("prune command failed: %v", err)
	}

	var result worktree.PruneResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output %q: %v", out.String(), err)
	}
	if len(result.Pruned) != 1 || result.Pruned[0] != wtPath || result.HistoryRemoved != 1 {
		t.Errorf("result = %+v, want %s pruned and one history entry removed", result, wtPath)
	}
	if list := runGitCommand(t, repoPath, "worktree", "list"); strings.Contains(list, wtPath) {
		t.Errorf("git still lists the pruned worktree:\n%s", list)
	}
}

// TestRemove_LockedWorktree tests that force gets past a worktree lock.
func TestRemove_LockedWorktree(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	wtPath := filepath.Join(tmpDir, "myrepo-feature")
	setupWorktree(t, repoPath, wtPath, "feature")
	runGitCommand(t, repoPath, "worktree", "lock", wtPath)

	ctx, _ := testContextWithConfigAndOutput(t, testConfig("", false), repoPath)

	remove := func(args ...string) error {
		cmd := newRemoveCmd()
		cmd.SetContext(ctx)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	if err := remove("feature"); !errors.Is(err, worktree.ErrDirtyWorktree) {
		t.Fatalf("expected ErrDirtyWorktree for a locked worktree, got %v", err)
	}
	if err := remove("feature", "--force"); err != nil {
		t.Fatalf("forced remove of locked worktree failed: %v", err)
	}
	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree should be deleted, stat err = %v", err)
	}
}

// TestRemove_BareLayout tests removing a worktree of a bare-repo layout.
//
// Scenario: proj/.bare holds the repository and proj/.git points at it
// Expected: `treehop remove` run from proj deletes proj/feature
func TestRemove_BareLayout(t *testing.T) {
	tmpDir := resolvePath(t, t.TempDir())
	src := setupTestRepo(t, tmpDir, "src")
	proj := filepath.Join(tmpDir, "proj")
	runGitCommand(t, tmpDir, "clone", "--bare", src, filepath.Join(proj, ".bare"))
	if err := os.WriteFile(filepath.Join(proj, ".git"), []byte("gitdir: ./.bare\n"), 0644); err != nil {
		t.Fatal(err)
	}
	wtPath := filepath.Join(proj, "feature")
	runGitCommand(t, proj, "worktree", "add", "-b", "feature", wtPath, "main")

	ctx, _ := testContextWithConfigAndOutput(t, testConfig("", false), proj)

	cmd := newRemoveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"feature"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("remove in bare layout failed: %v", err)
	}
	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree should be deleted, stat err = %v", err)
	}
}
