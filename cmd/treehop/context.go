package main

import (
	"context"
	"os"
)

type workDirKey struct{}

// withWorkDir sets the directory commands treat as the current repository.
func withWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// workDirFromContext returns the directory set by withWorkDir, falling back
// to the process working directory.
func workDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	dir, _ := os.Getwd()
	return dir
}
