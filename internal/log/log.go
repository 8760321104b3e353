// Package log provides context-aware logging for treehop.
//
// Diagnostics go to stderr so stdout stays reserved for primary output
// (see package output).
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger provides diagnostic output and verbose command tracing.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger. quiet suppresses all output, including verbose traces.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a "Warning: " prefixed line.
func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("Warning: "+format+"\n", args...)
}

// Debug writes msg followed by key=value pairs when verbose.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// Command logs an external command execution and returns a func that
// logs its duration once it finished. Only prints when verbose.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "%s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// IsVerbose returns true if verbose mode is enabled and not overridden by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
