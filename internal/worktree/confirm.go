package worktree

import (
	"context"
	"fmt"
	"strings"
)

// Confirmer asks the user a yes/no question and returns the raw answer.
// Returning ErrCancelled is treated like a "no".
type Confirmer interface {
	Confirm(ctx context.Context, question string) (string, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, question string) (string, error)

func (f ConfirmFunc) Confirm(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// Accepted reports whether answer is a yes: its first character is y or Y.
func Accepted(answer string) bool {
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}

// deleteQuestion is the prompt shown before removing path.
func deleteQuestion(path string, forced bool) string {
	if forced {
		return fmt.Sprintf("Force delete worktree %s? Uncommitted changes will be lost [y/N] ", path)
	}
	return fmt.Sprintf("Delete worktree %s? [y/N] ", path)
}
