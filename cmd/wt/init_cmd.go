package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/output"
	"github.com/raphi011/wtproj/internal/project"
	"github.com/raphi011/wtproj/internal/worktree"
)

func newInitCmd(a *app) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:     "init <name> <url>",
		Short:   "Clone a repository into a new project",
		GroupID: GroupProject,
		Args:    exactArgs(2),
		Long: `Create project <name> in the current directory by cloning <url>.

The clone becomes the main worktree at <name>/main/src, next to empty
build and local directories. The project is registered under <name> and
its create hook runs in the new checkout.

The path of the main checkout is printed on stdout.`,
		Example: `  wt init app git@github.com:org/app.git        # ./app/main/src
  wt init app https://example.com/app.git -C ~/src  # ~/src/app/main/src
  cd "$(wt init app git@github.com:org/app.git)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if parent == "" {
				parent = a.workDir
			}
			l.Debug("initializing project", "name", args[0], "url", args[1], "parent", parent)

			p, err := project.Init(ctx, a.store, a.vcs, a.hooks(args[0]), project.InitOptions{
				Parent: parent,
				Name:   args[0],
				URL:    args[1],
			})
			if err != nil {
				return err
			}
			out.Println(worktree.For(p, worktree.Main).Src)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "dir", "C", "", "Directory to create the project in (default: current directory)")
	_ = cmd.MarkFlagDirname("dir")

	return cmd
}
