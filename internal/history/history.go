// Package history records which worktrees the user switched to.
// `treehop switch --last` uses it to jump back to the previous worktree.
package history

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/treehop/treehop/internal/storage"
)

// maxEntries caps the history file; the least recently used entry goes first.
const maxEntries = 100

// FileName is the history file inside the state directory.
const FileName = "history.json"

// Entry is one worktree the user switched to.
type Entry struct {
	Path        string    `json:"path"`
	Repo        string    `json:"repo,omitempty"` // main repository path
	Branch      string    `json:"branch,omitempty"`
	SwitchCount int       `json:"switch_count"`
	LastSwitch  time.Time `json:"last_switch"`
}

// History is the list of entries, in no particular order.
type History struct {
	Entries []Entry `json:"entries"`
}

// DefaultPath returns ~/.treehop/history.json (or its TREEHOP_STATE_DIR
// equivalent).
func DefaultPath() string {
	path, err := storage.File(FileName)
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".treehop", FileName)
	}
	return path
}

// Load reads the history at path. A missing file is an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, err
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// Record bumps the entry for path, adding it if needed.
func (h *History) Record(path, repo, branch string, now time.Time) {
	if e := h.FindByPath(path); e != nil {
		e.SwitchCount++
		e.LastSwitch = now
		if branch != "" {
			e.Branch = branch
		}
		if repo != "" {
			e.Repo = repo
		}
		return
	}

	if len(h.Entries) >= maxEntries {
		h.sortByRecent()
		h.Entries = h.Entries[:maxEntries-1]
	}
	h.Entries = append(h.Entries, Entry{
		Path:        path,
		Repo:        repo,
		Branch:      branch,
		SwitchCount: 1,
		LastSwitch:  now,
	})
}

// Recent returns entries, most recent first.
func (h *History) Recent() []Entry {
	h.sortByRecent()
	return slices.Clone(h.Entries)
}

func (h *History) sortByRecent() {
	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return b.LastSwitch.Compare(a.LastSwitch)
	})
}

// FindByPath returns the entry for path or nil.
func (h *History) FindByPath(path string) *Entry {
	for i := range h.Entries {
		if h.Entries[i].Path == path {
			return &h.Entries[i]
		}
	}
	return nil
}

// RemoveByPath drops the entry for path. Reports whether one existed.
func (h *History) RemoveByPath(path string) bool {
	n := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool {
		return e.Path == path
	})
	return len(h.Entries) != n
}

// RemoveStale drops entries whose directory no longer exists and returns
// how many were removed.
func (h *History) RemoveStale() int {
	n := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool {
		_, err := os.Stat(e.Path)
		return err != nil
	})
	return n - len(h.Entries)
}

// RecordAccess records path in the history at historyFile. The file is
// locked for the whole load-record-save cycle.
func RecordAccess(path, repo, branch, historyFile string) error {
	return storage.Update(historyFile, func() error {
		h, err := Load(historyFile)
		if err != nil {
			// Corrupted - start fresh
			h = &History{}
		}
		h.Record(path, repo, branch, time.Now())
		return h.Save(historyFile)
	})
}

// Forget removes path from the history at historyFile. Reports whether an
// entry was removed.
func Forget(path, historyFile string) (bool, error) {
	removed := false
	err := storage.Update(historyFile, func() error {
		h, err := Load(historyFile)
		if err != nil {
			return err
		}
		if removed = h.RemoveByPath(path); !removed {
			return nil
		}
		return h.Save(historyFile)
	})
	return removed, err
}

// RemoveMissing drops entries whose directory no longer exists from the
// history at historyFile and returns how many were removed.
func RemoveMissing(historyFile string) (int, error) {
	removed := 0
	err := storage.Update(historyFile, func() error {
		h, err := Load(historyFile)
		if err != nil {
			return err
		}
		if removed = h.RemoveStale(); removed == 0 {
			return nil
		}
		return h.Save(historyFile)
	})
	return removed, err
}

// Previous returns the most recent existing entry of repo whose path
// differs from current. An empty repo matches every entry.
func Previous(historyFile, repo, current string) (string, error) {
	h, err := Load(historyFile)
	if err != nil {
		return "", err
	}
	for _, e := range h.Recent() {
		if e.Path == current || (repo != "" && e.Repo != repo) {
			continue
		}
		if _, err := os.Stat(e.Path); err != nil {
			continue
		}
		return e.Path, nil
	}
	return "", nil
}
