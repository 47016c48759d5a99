package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/output"
	"github.com/raphi011/wtproj/internal/sweep"
	"github.com/raphi011/wtproj/internal/ui/progress"
	"github.com/raphi011/wtproj/internal/ui/styles"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Remove stale worktrees",
		Aliases: []string{"prune"},
		GroupID: GroupWorktree,
		Args:    noArgs(),
		Long: `Find stale worktrees in the current project and offer to remove each one.

A worktree is stale when
  - its branch tracks an upstream that no longer exists on the remote, or
  - its branch has no upstream and no file in the worktree changed for
    four weeks.

Remote-tracking refs are pruned first. The full report is printed before
the first prompt. The main worktree is never swept.`,
		Example: `  wt sweep`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx).Writer()

			m, err := a.manager()
			if err != nil {
				return err
			}
			scanner := &sweep.Scanner{VCS: a.vcs, Remote: a.cfg.Remote}
			// The spinner shares stderr with log output; verbose mode would garble it.
			if f, ok := a.stderr.(*os.File); ok && !a.quiet && !a.verbose {
				sp := progress.NewSpinner(f, "Scanning "+m.Project.Name)
				sp.Start()
				scanner.Progress = sp
			}
			sweeper := &sweep.Sweeper{
				Scanner: scanner,
				Remover: m,
				Confirm: a.confirm,
				Out:     out,
				Styles:  styles.For(out),
			}
			_, err = sweeper.Run(ctx, m.Project)
			return err
		},
	}

	return cmd
}
