package worktree

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/treehop/treehop/internal/cmd"
	"github.com/treehop/treehop/internal/git"
)

// fakeBackend is an in-memory repository. Worktree directories are real
// so Switch's existence check works.
type fakeBackend struct {
	main      string
	worktrees []git.Worktree
	branches  map[string]bool
	dirty     map[string]bool

	added     []git.AddOptions
	removed   []string
	removeErr error
	addErr    error
	pruned    int
	mainErr   error
}

func newFakeBackend(root string) *fakeBackend {
	main := filepath.Join(root, "repo")
	if err := os.MkdirAll(main, 0755); err != nil {
		panic(err)
	}
	return &fakeBackend{
		main:      main,
		worktrees: []git.Worktree{{Path: main, Commit: "abcd123", Branch: "main", Main: true}},
		branches:  map[string]bool{"main": true},
		dirty:     map[string]bool{},
	}
}

// addExisting registers a worktree with a real directory.
func (f *fakeBackend) addExisting(path, branch string) {
	if err := os.MkdirAll(path, 0755); err != nil {
		panic(err)
	}
	f.worktrees = append(f.worktrees, git.Worktree{Path: path, Commit: "1234567", Branch: branch})
	if branch != "" {
		f.branches[branch] = true
	}
}

func (f *fakeBackend) ListWorktrees(context.Context) ([]git.Worktree, error) {
	if len(f.worktrees) == 0 {
		return nil, git.ErrNoWorktrees
	}
	return append([]git.Worktree(nil), f.worktrees...), nil
}

func (f *fakeBackend) BranchExists(_ context.Context, name string) (bool, error) {
	return f.branches[name], nil
}

func (f *fakeBackend) ListBranches(context.Context) ([]git.BranchRef, error) {
	checkedOut := map[string]string{}
	for _, wt := range f.worktrees {
		checkedOut[wt.Branch] = wt.Path
	}
	var refs []git.BranchRef
	for name := range f.branches {
		path, ok := checkedOut[name]
		refs = append(refs, git.BranchRef{Name: name, ExistsAsWorktree: ok, WorktreePath: path})
	}
	return refs, nil
}

func (f *fakeBackend) AddWorktree(_ context.Context, opts git.AddOptions) error {
	f.added = append(f.added, opts)
	if f.addErr != nil {
		return f.addErr
	}
	branch := opts.Branch
	if opts.Detach {
		branch = ""
	}
	f.addExisting(opts.Path, branch)
	return nil
}

func (f *fakeBackend) RemoveWorktree(_ context.Context, path string, force bool) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if f.dirty[path] && !force {
		return &cmd.Error{
			Name:     "git",
			Stderr:   "fatal: '" + path + "' contains modified or untracked files, use --force to delete it",
			ExitCode: 128,
		}
	}
	f.removed = append(f.removed, path)
	for i, wt := range f.worktrees {
		if wt.Path == path {
			f.worktrees = append(f.worktrees[:i], f.worktrees[i+1:]...)
			break
		}
	}
	return os.RemoveAll(path)
}

func (f *fakeBackend) PruneWorktrees(context.Context) error {
	f.pruned++
	f.worktrees = slices.DeleteFunc(f.worktrees, func(wt git.Worktree) bool {
		_, err := os.Stat(wt.Path)
		return err != nil
	})
	return nil
}

func (f *fakeBackend) IsWorktreeDirty(_ context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, err
	}
	return f.dirty[path], nil
}

func (f *fakeBackend) MainRepoPath(context.Context) (string, error) {
	if f.mainErr != nil {
		return "", f.mainErr
	}
	return f.main, nil
}

// scriptedConfirmer answers from a fixed list and records the questions.
type scriptedConfirmer struct {
	answers   []string
	err       error
	questions []string
	states    []State
	session   *Session
}

func (c *scriptedConfirmer) Confirm(_ context.Context, question string) (string, error) {
	c.questions = append(c.questions, question)
	if c.session != nil {
		c.states = append(c.states, c.session.State())
	}
	if c.err != nil {
		return "", c.err
	}
	if len(c.answers) == 0 {
		return "", nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

// memoryStore is a ForceStore for tests.
type memoryStore struct {
	forced bool
	saves  int
}

func (s *memoryStore) LoadForce() (bool, error) { return s.forced, nil }

func (s *memoryStore) SaveForce(forced bool) error {
	s.forced = forced
	s.saves++
	return nil
}
