package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/output"
	"github.com/raphi011/wtproj/internal/project"
	"github.com/raphi011/wtproj/internal/ui/static"
	"github.com/raphi011/wtproj/internal/ui/styles"
)

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees of the current project",
		Aliases: []string{"ls"},
		GroupID: GroupWorktree,
		Args:    noArgs(),
		Long: `List the worktree directories of the project enclosing the current
directory with the branch each one has checked out.

Directories with a src checkout that git does not know as a worktree of
the main clone are listed as invalid.`,
		Example: `  wt list
  wt list -f yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			m, err := a.manager()
			if err != nil {
				return err
			}
			infos, err := m.Worktrees(ctx)
			if err != nil {
				return err
			}
			if infos == nil {
				infos = []project.Info{}
			}

			return out.Encode(f, infos, func(w io.Writer) error {
				if len(infos) == 0 {
					_, err := fmt.Fprintf(w, "No worktrees in %s\n", m.Project.Name)
					return err
				}
				s := styles.For(w)
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{info.Name, orDash(info.Branch), orDash(info.Upstream), worktreeStatus(s, info)})
				}
				_, err := fmt.Fprint(w, static.RenderTable([]string{"NAME", "BRANCH", "UPSTREAM", "STATUS"}, rows, s.Enabled()))
				return err
			})
		},
	}

	addFormatFlag(cmd, &format, a.cfg.DefaultFormat)

	return cmd
}

func worktreeStatus(s styles.Styler, info project.Info) string {
	switch {
	case !info.Valid:
		return s.Error("invalid")
	case info.Main:
		return s.Title("main")
	default:
		return s.Success("ok")
	}
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
