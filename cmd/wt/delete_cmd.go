package main

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		Short:   "Delete the current project",
		GroupID: GroupProject,
		Args:    noArgs(),
		Long: `Delete the project enclosing the current directory.

After confirmation the project is unregistered and its whole directory
tree, every worktree included, is removed. No hooks run. Answering no
exits with status 4 and changes nothing.`,
		Example: `  wt delete`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			return m.Delete(cmd.Context())
		},
	}

	return cmd
}
