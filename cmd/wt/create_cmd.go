package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/output"
)

func newCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create <name> [base]",
		Short:   "Create a worktree",
		Aliases: []string{"new"},
		GroupID: GroupWorktree,
		Args:    rangeArgs(1, 2),
		Long: `Create worktree <name> in the current project, checked out on branch <name>.

The branch is chosen in this order:
  1. an existing local branch <name>
  2. a new branch tracking <remote>/<name> when the remote has one
  3. a new untracked branch started from [base] (the main branch by default),
     taken from the local branch if present and the remote otherwise

The worktree gets empty build and local directories and the project's
create hook runs in its src checkout. The src path is printed on stdout.`,
		Example: `  wt create feature-x           # branch from the main branch
  wt create hotfix release-1.2   # branch from release-1.2
  cd "$(wt create feature-x)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var base string
			if len(args) > 1 {
				base = args[1]
			}
			m, err := a.manager()
			if err != nil {
				return err
			}
			wt, err := m.Create(ctx, args[0], base)
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(wt.Src)
			return nil
		},
	}

	return cmd
}
