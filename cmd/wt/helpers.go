package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/config"
	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/output"
	"github.com/raphi011/wtproj/internal/resolve"
	"github.com/raphi011/wtproj/internal/worktree"
)

// usageArgs turns argument validation failures into usage errors (exit 2).
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errs.E(errs.KindUsage, err)
		}
		return nil
	}
}

func noArgs() cobra.PositionalArgs { return usageArgs(cobra.NoArgs) }
func exactArgs(n int) cobra.PositionalArgs { return usageArgs(cobra.ExactArgs(n)) }
func rangeArgs(lo, hi int) cobra.PositionalArgs { return usageArgs(cobra.RangeArgs(lo, hi)) }

// addFormatFlag registers --format/-f with def as its default.
func addFormatFlag(cmd *cobra.Command, format *string, def string) {
	cmd.Flags().StringVarP(format, "format", "f", def, "Output format: "+strings.Join(config.ValidFormats, ", "))
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.ValidFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

// parseFormat validates a --format value as a usage error.
func parseFormat(s string) (output.Format, error) {
	f, err := output.ParseFormat(s)
	if err != nil {
		return "", errs.E(errs.KindUsage, err)
	}
	return f, nil
}

// completeWorktrees completes the first argument with the worktree names of
// the enclosing project. withMain controls whether main is offered.
func (a *app) completeWorktrees(withMain bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		p, err := resolve.Project(a.store, a.workDir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		worktrees, err := worktree.Scan(p)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var matches []string
		for _, wt := range worktrees {
			if wt.IsMain() && !withMain {
				continue
			}
			if strings.HasPrefix(wt.Name, toComplete) {
				matches = append(matches, wt.Name)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}
