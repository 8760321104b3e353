package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/treehop/treehop/internal/log"
)

// Error describes an external command that could not be started or exited non-zero.
type Error struct {
	Name     string
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if errors.Is(e.Err, exec.ErrNotFound) {
		return fmt.Sprintf("%s: command not found", e.Name)
	}
	return fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RunContext executes a command in dir and returns stderr in the error if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, dir, name, args, false)
	return err
}

// OutputContext executes a command in dir and returns its stdout,
// with stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, dir, name, args, true)
}

func run(ctx context.Context, dir, name string, args []string, wantOutput bool) ([]byte, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		c.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	if wantOutput {
		c.Stdout = &stdout
	}
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		cmdErr := &Error{
			Name:     name,
			Args:     args,
			Stderr:   strings.TrimSpace(stderr.String()),
			ExitCode: -1,
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return nil, cmdErr
	}
	if !wantOutput {
		return nil, nil
	}
	return stdout.Bytes(), nil
}
