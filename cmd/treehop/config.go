package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/config"
	"github.com/treehop/treehop/internal/git"
	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage treehop configuration.

Global config: ~/.config/treehop/config.toml (or $TREEHOP_CONFIG)
Local config:  .treehop.toml (in the main repo root)`,
		Example: `  treehop config init     # Create default global config
  treehop config show     # Show effective config
  treehop config hooks    # List configured hooks`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigHooksCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Create default config file",
		Args:    cobra.NoArgs,
		Example: `  treehop config init      # Create global config
  treehop config init -f   # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path, err := config.Path()
			if err != nil {
				return err
			}
			if err := config.Init(path, force); err != nil {
				if !force && strings.Contains(err.Error(), "already exists") {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				return err
			}

			log.FromContext(ctx).Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration as TOML.

Inside a repository the global config is merged with its .treehop.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			path, err := config.Path()
			if err != nil {
				return err
			}
			l.Printf("Global config: %s\n", path)
			if mainRepo, err := git.MainRepoPath(ctx, workDirFromContext(ctx)); err == nil {
				l.Printf("Local config:  %s\n", filepath.Join(mainRepo, config.LocalConfigFileName))
			}

			return config.Encode(out.Writer(), cfg)
		},
	}

	return cmd
}

func newConfigHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List configured hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if len(cfg.Hooks.Hooks) == 0 {
				log.FromContext(ctx).Println("No hooks configured")
				return nil
			}

			for _, name := range hookNames(cfg) {
				hook := cfg.Hooks.Hooks[name]
				on := "manual"
				if len(hook.On) > 0 {
					on = strings.Join(hook.On, ",")
				}
				out.Printf("%s\t%s\t%s\n", name, on, hook.Command)
			}
			return nil
		},
	}

	return cmd
}

// hookNames returns the configured hook names in sorted order.
func hookNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Hooks.Hooks))
	for name := range cfg.Hooks.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
