package main

import (
	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Fast-forward the main worktree",
		GroupID: GroupProject,
		Args:    noArgs(),
		Long: `Fetch the remote and fast-forward the branch checked out in the main
worktree. Diverged history is left alone and reported as an error.`,
		Example: `  wt update`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			return m.Update(cmd.Context())
		},
	}

	return cmd
}
