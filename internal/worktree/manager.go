package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/treehop/treehop/internal/cmd"
	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/history"
	"github.com/treehop/treehop/internal/hooks"
	"github.com/treehop/treehop/internal/log"
)

// Backend is the git surface the Manager needs. *git.Repo implements it.
type Backend interface {
	ListWorktrees(ctx context.Context) ([]git.Worktree, error)
	BranchExists(ctx context.Context, name string) (bool, error)
	ListBranches(ctx context.Context) ([]git.BranchRef, error)
	AddWorktree(ctx context.Context, opts git.AddOptions) error
	RemoveWorktree(ctx context.Context, path string, force bool) error
	PruneWorktrees(ctx context.Context) error
	IsWorktreeDirty(ctx context.Context, path string) (bool, error)
	MainRepoPath(ctx context.Context) (string, error)
}

// maxStatusChecks bounds concurrent `git status` runs in ListStatus.
const maxStatusChecks = 8

// Manager runs worktree operations for one repository.
type Manager struct {
	backend     Backend
	cfg         *config.Config
	session     *Session
	confirmer   Confirmer
	historyFile string
	now         func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithConfirmer sets the confirmer asked before deletions.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) { m.confirmer = c }
}

// WithHistory records switches in the history file at path.
func WithHistory(path string) Option {
	return func(m *Manager) { m.historyFile = path }
}

// New returns a Manager. A nil cfg means defaults; a nil session means a
// fresh in-memory one.
func New(backend Backend, cfg *config.Config, session *Session, opts ...Option) *Manager {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	if session == nil {
		session = NewSession()
	}
	m := &Manager{
		backend: backend,
		cfg:     cfg,
		session: session,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the session holding the force flag.
func (m *Manager) Session() *Session {
	return m.session
}

// List returns the repository's worktrees, bare entry excluded.
func (m *Manager) List(ctx context.Context) ([]git.Worktree, error) {
	return m.backend.ListWorktrees(ctx)
}

// ListStatus is List with Dirty filled in. A worktree whose status cannot
// be read, such as one whose directory is gone, is reported clean.
func (m *Manager) ListStatus(ctx context.Context) ([]git.Worktree, error) {
	worktrees, err := m.backend.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	l := log.FromContext(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxStatusChecks)
	for i := range worktrees {
		if worktrees[i].Prunable {
			continue
		}
		g.Go(func() error {
			dirty, err := m.backend.IsWorktreeDirty(gctx, worktrees[i].Path)
			if err != nil {
				l.Debug("status check failed", "path", worktrees[i].Path, "error", err)
				return nil
			}
			worktrees[i].Dirty = dirty
			return nil
		})
	}
	_ = g.Wait() // status failures are logged, never returned

	return worktrees, nil
}

// Branches returns local branches annotated with their worktree.
func (m *Manager) Branches(ctx context.Context) ([]git.BranchRef, error) {
	return m.backend.ListBranches(ctx)
}

// BranchExists reports whether a local branch exists.
func (m *Manager) BranchExists(ctx context.Context, name string) (bool, error) {
	return m.backend.BranchExists(ctx, name)
}

// CreateOptions describes a worktree to create.
type CreateOptions struct {
	// Path of the new worktree. Empty derives it from Branch.
	Path string
	// Branch to check out. Empty creates a detached worktree.
	Branch string
	// CommitIsh for a detached worktree; empty means HEAD.
	CommitIsh string
	// BaseBranch to create Branch from when it does not exist yet.
	BaseBranch string
	Hooks      hooks.Options
}

// CreateResult reports a created (or already present) worktree.
type CreateResult struct {
	Path          string `json:"path"`
	Branch        string `json:"branch,omitempty"`
	NewBranch     bool   `json:"new_branch,omitempty"`
	Detached      bool   `json:"detached,omitempty"`
	AlreadyExists bool   `json:"already_exists,omitempty"`
}

// Create adds a worktree.
//
// A missing branch is created from BaseBranch; without one Create returns
// ErrAmbiguousBase so the caller can ask for a base and retry. A branch
// already checked out elsewhere is reported with AlreadyExists instead of
// failing. Create hooks run after success.
func (m *Manager) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	l := log.FromContext(ctx)

	rawPath := opts.Path
	if rawPath == "" {
		rawPath = DefaultName(opts.Branch)
	}
	if rawPath == "" {
		return nil, fmt.Errorf("worktree path or branch is required")
	}
	path, err := NormalizePath(rawPath, m.cfg.BaseDirectory)
	if err != nil {
		return nil, err
	}

	add := git.AddOptions{Path: path}
	result := &CreateResult{Path: path, Branch: opts.Branch}

	if opts.Branch == "" {
		add.Detach = true
		add.StartPoint = opts.CommitIsh
		result.Detached = true
	} else {
		exists, err := m.backend.BranchExists(ctx, opts.Branch)
		if err != nil {
			return nil, err
		}

		switch {
		case !exists && opts.BaseBranch == "":
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousBase, opts.Branch)
		case !exists:
			add.Branch = opts.Branch
			add.NewBranch = true
			add.StartPoint = opts.BaseBranch
			result.NewBranch = true
		default:
			if existing, ok, err := m.checkedOutAt(ctx, opts.Branch); err != nil {
				return nil, err
			} else if ok {
				l.Printf("Branch %s is already checked out at %s\n", opts.Branch, existing)
				return &CreateResult{Path: existing, Branch: opts.Branch, AlreadyExists: true}, nil
			}
			if opts.CommitIsh != "" {
				l.Debug("ignoring commit-ish for existing branch", "branch", opts.Branch, "commit", opts.CommitIsh)
			}
			add.Branch = opts.Branch
		}
	}

	l.Debug("creating worktree", "path", path, "branch", opts.Branch, "base", opts.BaseBranch)
	if err := m.backend.AddWorktree(ctx, add); err != nil {
		createErr := &CreateError{Path: path, Branch: opts.Branch, Err: err}
		var cmdErr *cmd.Error
		if errors.As(err, &cmdErr) {
			createErr.Output = cmdErr.Stderr
		}
		return nil, createErr
	}

	l.Printf("Created worktree %s\n", path)
	m.runHooks(ctx, hooks.CommandCreate, opts.Hooks, path, opts.Branch, path)
	return result, nil
}

// checkedOutAt returns the worktree path where branch is checked out.
func (m *Manager) checkedOutAt(ctx context.Context, branch string) (string, bool, error) {
	branches, err := m.backend.ListBranches(ctx)
	if err != nil {
		return "", false, err
	}
	for _, b := range branches {
		if b.Name == branch && b.ExistsAsWorktree {
			return b.WorktreePath, true, nil
		}
	}
	return "", false, nil
}

// SwitchOptions configures Switch.
type SwitchOptions struct {
	Hooks hooks.Options
}

// SwitchResult is the worktree switched to.
type SwitchResult struct {
	Path   string `json:"path"`
	Branch string `json:"branch,omitempty"`
}

// Switch resolves target (a worktree path or branch) to a live worktree,
// records it in history and runs switch hooks. It never prompts. Changing
// the caller's directory is up to the caller.
func (m *Manager) Switch(ctx context.Context, target string, opts SwitchOptions) (*SwitchResult, error) {
	wt, err := m.resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(wt.Path); err != nil {
		return nil, fmt.Errorf("%w: %s no longer exists", ErrInvalidWorktree, wt.Path)
	}

	if m.historyFile != "" {
		if err := history.RecordAccess(wt.Path, m.repoKey(ctx), wt.Branch, m.historyFile); err != nil {
			log.FromContext(ctx).Warnf("failed to record history: %v", err)
		}
	}

	m.runHooks(ctx, hooks.CommandSwitch, opts.Hooks, wt.Path, wt.Branch, wt.Path)
	return &SwitchResult{Path: wt.Path, Branch: wt.Branch}, nil
}

// Previous returns the worktree `switch --last` goes to from dir: the most
// recently switched-to worktree of this repository other than the one
// containing dir. It returns "" when there is none.
func (m *Manager) Previous(ctx context.Context, dir string) (string, error) {
	if m.historyFile == "" {
		return "", nil
	}
	worktrees, err := m.backend.ListWorktrees(ctx)
	if err != nil && !errors.Is(err, git.ErrNoWorktrees) {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	current := dir
	if wt, ok := git.WorktreeContaining(worktrees, dir); ok {
		current = wt.Path
	}

	prev, err := history.Previous(m.historyFile, m.repoKey(ctx), current)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	return prev, nil
}

// repoKey identifies the repository in history entries. Empty when the
// main repository cannot be determined.
func (m *Manager) repoKey(ctx context.Context) string {
	main, err := m.backend.MainRepoPath(ctx)
	if err != nil {
		log.FromContext(ctx).Debug("main repo unknown", "error", err)
		return ""
	}
	return main
}

// resolve finds the listed worktree matching target by path or branch.
func (m *Manager) resolve(ctx context.Context, target string) (git.Worktree, error) {
	if target == "" {
		return git.Worktree{}, fmt.Errorf("%w: no worktree given", ErrInvalidWorktree)
	}
	worktrees, err := m.backend.ListWorktrees(ctx)
	if err != nil {
		return git.Worktree{}, err
	}
	if wt, ok := git.FindWorktree(worktrees, target); ok {
		return wt, nil
	}
	if abs, err := NormalizePath(target, ""); err == nil {
		if wt, ok := git.FindWorktree(worktrees, abs); ok {
			return wt, nil
		}
	}
	return git.Worktree{}, fmt.Errorf("%w: %s", ErrInvalidWorktree, target)
}

// DeleteOptions configures Delete.
type DeleteOptions struct {
	// Force removes the worktree even with local changes. The session's
	// force flag has the same effect.
	Force bool
	Hooks hooks.Options
}

// DeleteResult reports the outcome of Delete.
type DeleteResult struct {
	Path       string `json:"path"`
	Branch     string `json:"branch,omitempty"`
	Forced     bool   `json:"forced,omitempty"`
	ForceReset bool   `json:"force_reset,omitempty"`
	Cancelled  bool   `json:"cancelled,omitempty"`
}

// Delete removes the worktree at target (a path or branch).
//
// With confirm_deletions enabled the confirmer is asked first; anything but
// a yes returns a result with Cancelled set and a nil error. A successful
// delete clears the session force flag; a failed one leaves it unchanged.
// Without force, git refusing a modified or locked worktree yields
// ErrDirtyWorktree.
func (m *Manager) Delete(ctx context.Context, target string, opts DeleteOptions) (*DeleteResult, error) {
	l := log.FromContext(ctx)

	wt, err := m.resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	if wt.Main {
		return nil, fmt.Errorf("%w: %s is the main worktree", ErrInvalidWorktree, wt.Path)
	}

	forced := opts.Force || m.session.Forced()
	result := &DeleteResult{Path: wt.Path, Branch: wt.Branch, Forced: forced}

	if m.cfg.ConfirmDeletions {
		ok, err := m.confirm(ctx, deleteQuestion(wt.Path, forced))
		if err != nil {
			return nil, err
		}
		if !ok {
			l.Println("Deletion cancelled")
			result.Cancelled = true
			return result, nil
		}
	}

	l.Debug("removing worktree", "path", wt.Path, "force", forced)
	if err := m.backend.RemoveWorktree(ctx, wt.Path, forced); err != nil {
		if !forced && git.IsDirtyError(err) {
			return nil, fmt.Errorf("%w: %s (delete again with force)", ErrDirtyWorktree, wt.Path)
		}
		return nil, fmt.Errorf("failed to delete worktree %s: %w", wt.Path, err)
	}

	result.ForceReset = m.session.reset(ctx)
	l.Printf("Deleted worktree %s\n", wt.Path)

	if m.historyFile != "" {
		if _, err := history.Forget(wt.Path, m.historyFile); err != nil {
			l.Warnf("failed to update history: %v", err)
		}
	}

	// The worktree is gone, so delete hooks run in the main repository,
	// or next to the removed directory when that is unknown.
	hookDir := m.repoKey(ctx)
	if hookDir == "" {
		hookDir = filepath.Dir(wt.Path)
	}
	m.runHooks(ctx, hooks.CommandDelete, opts.Hooks, wt.Path, wt.Branch, hookDir)
	return result, nil
}

// PruneResult reports what Prune cleaned up.
type PruneResult struct {
	// Pruned lists worktrees whose directory was gone.
	Pruned         []string `json:"pruned,omitempty"`
	HistoryRemoved int      `json:"history_removed,omitempty"`
}

// Prune drops git's records of worktrees whose directory no longer exists
// and removes history entries pointing at missing directories.
func (m *Manager) Prune(ctx context.Context) (*PruneResult, error) {
	l := log.FromContext(ctx)

	worktrees, err := m.backend.ListWorktrees(ctx)
	if err != nil && !errors.Is(err, git.ErrNoWorktrees) {
		return nil, err
	}

	result := &PruneResult{}
	for _, wt := range worktrees {
		if wt.Main {
			continue
		}
		if _, err := os.Stat(wt.Path); wt.Prunable || errors.Is(err, os.ErrNotExist) {
			result.Pruned = append(result.Pruned, wt.Path)
		}
	}

	if err := m.backend.PruneWorktrees(ctx); err != nil {
		return nil, fmt.Errorf("failed to prune worktrees: %w", err)
	}
	for _, path := range result.Pruned {
		l.Printf("Pruned worktree %s\n", path)
	}

	if m.historyFile != "" {
		removed, err := history.RemoveMissing(m.historyFile)
		if err != nil {
			l.Warnf("failed to clean history: %v", err)
		}
		result.HistoryRemoved = removed
		l.Debug("history cleaned", "removed", removed)
	}

	return result, nil
}

// confirm asks the confirmer, tracking the pending state on the session.
func (m *Manager) confirm(ctx context.Context, question string) (bool, error) {
	if m.confirmer == nil {
		return false, fmt.Errorf("deletion needs confirmation but no confirmer is available")
	}

	m.session.beginConfirmation()
	defer m.session.endConfirmation()

	answer, err := m.confirmer.Confirm(ctx, question)
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return Accepted(answer), nil
}

// runHooks runs the hooks configured for trigger. Failures are warnings.
func (m *Manager) runHooks(ctx context.Context, trigger hooks.CommandType, opts hooks.Options, path, branch, workDir string) {
	matches, err := hooks.SelectHooks(m.cfg.Hooks, opts.Name, opts.Skip, trigger)
	if err != nil {
		log.FromContext(ctx).Warnf("%v", err)
		return
	}
	if len(matches) == 0 {
		return
	}

	mainRepo, _ := m.backend.MainRepoPath(ctx)
	hc := hooks.Context{
		Path:     path,
		Branch:   branch,
		MainRepo: mainRepo,
		Trigger:  string(trigger),
		Env:      opts.Env,
	}
	if mainRepo != "" {
		hc.Repo = filepath.Base(mainRepo)
	}
	hooks.Run(ctx, matches, hc, workDir)
}
