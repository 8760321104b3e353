// Package static provides non-interactive terminal output for treehop.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/treehop/treehop/internal/git"
)

// WorktreeHeaders are the columns of WorktreeTableRow.
var WorktreeHeaders = []string{"PATH", "BRANCH", "COMMIT", "STATUS"}

// BranchHeaders are the columns of BranchTableRow.
var BranchHeaders = []string{"BRANCH", "WORKTREE"}

// RenderTable creates a formatted table with aligned columns and no borders.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// WorktreeTableRow formats a worktree for RenderTable with WorktreeHeaders.
func WorktreeTableRow(wt git.Worktree) []string {
	branch := wt.Branch
	if wt.Detached || branch == "" {
		branch = "(detached)"
	}

	var status []string
	if wt.Main {
		status = append(status, "main")
	}
	if wt.Dirty {
		status = append(status, "dirty")
	}
	if wt.Locked {
		status = append(status, "locked")
	}
	if wt.Prunable {
		status = append(status, "prunable")
	}

	return []string{wt.Path, branch, wt.Commit, strings.Join(status, ",")}
}

// BranchTableRow formats a branch for RenderTable with BranchHeaders.
func BranchTableRow(b git.BranchRef) []string {
	return []string{b.Name, b.WorktreePath}
}

// RenderWorktrees renders worktrees as a table.
func RenderWorktrees(worktrees []git.Worktree) string {
	rows := make([][]string, len(worktrees))
	for i, wt := range worktrees {
		rows[i] = WorktreeTableRow(wt)
	}
	return RenderTable(WorktreeHeaders, rows)
}

// RenderBranches renders branches as a table.
func RenderBranches(branches []git.BranchRef) string {
	rows := make([][]string, len(branches))
	for i, b := range branches {
		rows[i] = BranchTableRow(b)
	}
	return RenderTable(BranchHeaders, rows)
}
