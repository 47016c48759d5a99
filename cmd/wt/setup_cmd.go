package main

import (
	"github.com/spf13/cobra"
)

func newSetupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "setup <name>",
		Short:             "Run the setup hook in a worktree",
		GroupID:           GroupWorktree,
		Args:              exactArgs(1),
		ValidArgsFunction: a.completeWorktrees(true),
		Long: `Run the project's setup hook in the src checkout of worktree <name>.

Hooks are looked up in the hooks directory as <project>.sh (function
setup_hook) or <project>.go (function SetupHook). A failing hook is
reported as a warning.`,
		Example: `  wt setup main
  wt setup feature-x`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			return m.Setup(cmd.Context(), args[0])
		},
	}

	return cmd
}
