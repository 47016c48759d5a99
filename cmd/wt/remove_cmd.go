package main

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove <name>",
		Short:             "Remove a worktree",
		Aliases:           []string{"rm"},
		GroupID:           GroupWorktree,
		Args:              exactArgs(1),
		ValidArgsFunction: a.completeWorktrees(false),
		Long: `Remove worktree <name> from the current project after confirmation.

The remove hook runs first, then the worktree is detached from git
(forcibly if it has local changes) and its directory is deleted. The
branch itself is kept. The main worktree cannot be removed.`,
		Example: `  wt remove feature-x`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			return m.Remove(cmd.Context(), args[0])
		},
	}

	return cmd
}
