package main

import (
	"github.com/spf13/cobra"

	"github.com/treehop/treehop/internal/output"
)

func newForceCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:     "force",
		Short:   "Toggle force mode for the next delete",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Toggle force mode.

While force mode is on, the next "treehop remove" deletes the worktree
even with local changes and its confirmation says so. A successful delete
turns force mode off again; a failed or cancelled one leaves it on.

The flag is kept in ~/.treehop/session.json between invocations.`,
		Example: `  treehop force            # Toggle
  treehop force --status   # Print idle or forced`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			mgr, err := newManager(cmd)
			if err != nil {
				return err
			}
			session := mgr.Session()

			if !status {
				session.ToggleForce(ctx)
			}
			out.Println(session.State())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&status, "status", "s", false, "Print the current state without toggling")

	return cmd
}
