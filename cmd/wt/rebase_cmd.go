package main

import (
	"github.com/spf13/cobra"
)

func newRebaseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rebase <name> [base]",
		Short:             "Rebase a worktree onto the remote",
		GroupID:           GroupWorktree,
		Args:              rangeArgs(1, 2),
		ValidArgsFunction: a.completeWorktrees(false),
		Long: `Fetch the remote and rebase worktree <name> onto <remote>/[base]
(the main branch by default).

When the rebase stops on conflicts it is left in progress for you to
resolve in the worktree. The rebase hook runs only after a clean rebase.`,
		Example: `  wt rebase feature-x
  wt rebase hotfix release-1.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var base string
			if len(args) > 1 {
				base = args[1]
			}
			m, err := a.manager()
			if err != nil {
				return err
			}
			return m.Rebase(cmd.Context(), args[0], base)
		},
	}

	return cmd
}
