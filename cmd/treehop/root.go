package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "treehop",
	Short: "Create, switch and delete git worktrees",
	Long: `treehop manages the worktrees of the git repository you are in.

It lists worktrees and branches, creates worktrees for new or existing
branches, switches between them and deletes them behind a confirmation
prompt. A one-shot force flag ("treehop force") lets the next delete
discard local changes.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Logger is built here so that --verbose and --quiet are parsed
		ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)

		// Skip git check for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Check git is available
		if err := git.CheckGit(); err != nil {
			return err
		}

		cmd.SetContext(loadConfig(ctx))
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// loadConfig attaches the global config, merged with the repo's
// .treehop.toml when the working directory is inside a repository.
// Invalid config is reported and replaced by defaults.
func loadConfig(ctx context.Context) context.Context {
	l := log.FromContext(ctx)

	global, err := config.Load()
	if err != nil {
		l.Warnf("%v", err)
	}
	cfg := &global

	mainRepo, err := git.MainRepoPath(ctx, workDirFromContext(ctx))
	if err != nil {
		l.Debug("not inside a repository", "dir", workDirFromContext(ctx))
		return config.WithConfig(ctx, cfg)
	}

	local, err := config.LoadLocal(mainRepo)
	if err != nil {
		l.Warnf("%v", err)
		return config.WithConfig(ctx, cfg)
	}
	merged, err := config.MergeLocal(cfg, local)
	if err != nil {
		l.Warnf("%v", err)
		return config.WithConfig(ctx, cfg)
	}
	return config.WithConfig(ctx, merged)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "treehop: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = withWorkDir(ctx, workDir)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'treehop -h' for help")
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newBranchesCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newPruneCmd())
	rootCmd.AddCommand(newForceCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
