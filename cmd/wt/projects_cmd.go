package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/output"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/resolve"
	"github.com/raphi011/wtproj/internal/ui/static"
	"github.com/raphi011/wtproj/internal/ui/styles"
)

func newProjectsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "projects",
		Short:   "List registered projects",
		GroupID: GroupProject,
		Args:    noArgs(),
		Long: `List every registered project in registration order.

The project enclosing the current directory is marked with '*'.`,
		Example: `  wt projects
  wt projects -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			projects, err := a.store.List()
			if err != nil {
				return err
			}
			if projects == nil {
				projects = []registry.Project{}
			}

			return out.Encode(f, projects, func(w io.Writer) error {
				if len(projects) == 0 {
					_, err := fmt.Fprintln(w, "No projects registered")
					return err
				}
				current, _ := resolve.Project(a.store, a.workDir)
				rows := make([][]string, 0, len(projects))
				for _, p := range projects {
					marker := ""
					if p == current {
						marker = "*"
					}
					rows = append(rows, []string{marker, p.Name, p.Path})
				}
				_, err := fmt.Fprint(w, static.RenderTable([]string{"", "NAME", "PATH"}, rows, styles.For(w).Enabled()))
				return err
			})
		},
	}

	addFormatFlag(cmd, &format, a.cfg.DefaultFormat)

	return cmd
}
