package git

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/treehop/treehop/internal/cmd"
)

// ErrNoWorktrees is returned when a listing contains no usable worktree.
// Callers typically show an empty state rather than an error.
var ErrNoWorktrees = errors.New("no worktrees found")

// shortHashLen is the number of hash characters kept in Worktree.Commit.
const shortHashLen = 7

// Worktree is a single non-bare entry of `git worktree list`.
type Worktree struct {
	Path     string `json:"path"`
	Commit   string `json:"commit"`
	Branch   string `json:"branch,omitempty"` // empty when detached
	Detached bool   `json:"detached,omitempty"`
	Locked   bool   `json:"locked,omitempty"`
	Prunable bool   `json:"prunable,omitempty"`

	// Main marks the repository's own checkout. git lists it first; a bare
	// repository has none.
	Main bool `json:"main,omitempty"`

	// Dirty is filled in by callers that check status; listing leaves it false.
	Dirty bool `json:"dirty,omitempty"`
}

// ListWorktrees returns the worktrees of the repository containing dir.
// Bare entries are skipped. Returns ErrNoWorktrees if nothing remains.
func ListWorktrees(ctx context.Context, dir string) ([]Worktree, error) {
	var worktrees []Worktree

	out, err := outputGit(ctx, dir, "worktree", "list", "--porcelain")
	switch {
	case err == nil:
		worktrees = ParsePorcelain(string(out))
	case porcelainUnsupported(err):
		out, err = outputGit(ctx, dir, "worktree", "list")
		if err != nil {
			return nil, fmt.Errorf("failed to list worktrees: %w", err)
		}
		worktrees = ParseList(string(out))
	default:
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}

	if len(worktrees) == 0 {
		return nil, ErrNoWorktrees
	}
	return worktrees, nil
}

// porcelainUnsupported reports whether git rejected the --porcelain flag.
func porcelainUnsupported(err error) bool {
	var cmdErr *cmd.Error
	if !errors.As(err, &cmdErr) {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	return strings.Contains(stderr, "unknown option") || strings.HasPrefix(stderr, "usage:")
}

// ParsePorcelain parses `git worktree list --porcelain` output.
// Entries are separated by blank lines; the bare entry is dropped.
func ParsePorcelain(output string) []Worktree {
	var (
		worktrees []Worktree
		current   Worktree
		bare      bool
		inEntry   bool
		entries   int
	)

	flush := func() {
		if !inEntry {
			return
		}
		if !bare && current.Path != "" {
			current.Main = entries == 0
			worktrees = append(worktrees, current)
		}
		entries++
		current = Worktree{}
		bare = false
		inEntry = false
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current.Path = strings.TrimPrefix(line, "worktree ")
			inEntry = true
		case strings.HasPrefix(line, "HEAD "):
			current.Commit = shortHash(strings.TrimPrefix(line, "HEAD "))
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "detached":
			current.Detached = true
		case line == "bare":
			bare = true
		case line == "locked" || strings.HasPrefix(line, "locked "):
			current.Locked = true
		case line == "prunable" || strings.HasPrefix(line, "prunable "):
			current.Prunable = true
		}
	}
	flush()

	return worktrees
}

// listLineRe matches one row of the plain `git worktree list` format:
//
//	/path/to/wt   abcd123 [branch] locked
//	/path/to/wt   abcd123 (detached HEAD)
//	/path/.bare   (bare)
//
// The path group is lazy so paths containing spaces still parse.
var listLineRe = regexp.MustCompile(`^(.+?)\s+([0-9a-f]{4,64}|\(bare\))(?:\s+(\[.*\]|\(detached HEAD\)))?((?:\s+(?:locked|prunable))*)\s*$`)

// ParseList parses the human-readable `git worktree list` output.
// Used when the installed git does not understand --porcelain.
func ParseList(output string) []Worktree {
	var worktrees []Worktree

	entries := 0
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := listLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries++
		if m[2] == "(bare)" {
			continue
		}

		wt := Worktree{
			Path:   m[1],
			Commit: shortHash(m[2]),
			Main:   entries == 1,
		}
		switch ref := m[3]; {
		case ref == "(detached HEAD)":
			wt.Detached = true
		case strings.HasPrefix(ref, "["):
			wt.Branch = strings.TrimSuffix(strings.TrimPrefix(ref, "["), "]")
		}
		for _, flag := range strings.Fields(m[4]) {
			switch flag {
			case "locked":
				wt.Locked = true
			case "prunable":
				wt.Prunable = true
			}
		}
		worktrees = append(worktrees, wt)
	}

	return worktrees
}

func shortHash(hash string) string {
	hash = strings.TrimSpace(hash)
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

// FindWorktree returns the worktree whose path or branch equals target.
// Paths win over branch names. The bool is false when nothing matches.
func FindWorktree(worktrees []Worktree, target string) (Worktree, bool) {
	for _, wt := range worktrees {
		if wt.Path == target {
			return wt, true
		}
	}
	for _, wt := range worktrees {
		if wt.Branch != "" && wt.Branch == target {
			return wt, true
		}
	}
	return Worktree{}, false
}

// WorktreeContaining returns the worktree whose directory holds dir,
// preferring the deepest match so nested worktrees resolve to themselves.
func WorktreeContaining(worktrees []Worktree, dir string) (Worktree, bool) {
	var (
		best  Worktree
		found bool
	)
	dir = filepath.Clean(dir)
	for _, wt := range worktrees {
		if !isWithin(dir, wt.Path) {
			continue
		}
		if !found || len(wt.Path) > len(best.Path) {
			best, found = wt, true
		}
	}
	return best, found
}

// isWithin reports whether path is root or lies below it.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
