package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/wtproj/internal/config"
	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/git"
	"github.com/raphi011/wtproj/internal/hooks"
	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/output"
	"github.com/raphi011/wtproj/internal/project"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/resolve"
	"github.com/raphi011/wtproj/internal/ui/prompt"
	"github.com/raphi011/wtproj/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupProject  = "project"
	GroupWorktree = "worktree"
	GroupUtility  = "utility"
)

// vcsClient is everything the commands need from git.
type vcsClient interface {
	project.VCS
	VerifyRef(ctx context.Context, dir, ref string) bool
}

// app is the shared state injected into commands.
type app struct {
	cfg     config.Config
	workDir string
	store   registry.Store
	vcs     vcsClient
	confirm prompt.Confirmer
	hooks   func(projectName string) project.HookRunner
	stdout  io.Writer
	stderr  io.Writer

	// Global flags
	verbose bool
	quiet   bool

	logger *log.Logger
}

// newApp wires the production dependencies.
func newApp(cfg config.Config, workDir string) *app {
	return &app{
		cfg:     cfg,
		workDir: workDir,
		store:   registry.NewFileStore(cfg.ProjectsFile),
		vcs:     git.New(),
		confirm: prompt.New(os.Stdin, os.Stderr),
		hooks: func(name string) project.HookRunner {
			return hooks.NewForProject(cfg.HooksDir, cfg.HookShell, name)
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// manager resolves the project enclosing the working directory.
func (a *app) manager() (*project.Manager, error) {
	p, err := resolve.Project(a.store, a.workDir)
	if err != nil {
		return nil, err
	}
	return &project.Manager{
		Project: p,
		Store:   a.store,
		VCS:     a.vcs,
		Hooks:   a.hooks(p.Name),
		Confirm: a.confirm,
		Remote:  a.cfg.Remote,
	}, nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wt",
		Short: "Manage projects made of git worktrees",
		Long: `wt manages projects laid out as one directory per git worktree.

A project is registered under a name and lives at <project>/<worktree>/,
where every worktree has a src checkout, a build directory and a local
directory. The main worktree holds the full clone; every other worktree
is linked to it. Commands operate on the project enclosing the current
directory.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		Args:                       noSubcommand,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose && a.quiet {
				return errs.Usage("--verbose and --quiet are mutually exclusive")
			}

			l := log.New(a.stderr, a.verbose, a.quiet)
			if a.cfg.LogFile != "" {
				fl, err := l.WithFile(log.FileOptions{
					Path:       a.cfg.LogFile,
					MaxSizeMB:  a.cfg.Log.MaxSizeMB,
					MaxBackups: a.cfg.Log.MaxBackups,
					MaxAgeDays: a.cfg.Log.MaxAgeDays,
				})
				if err != nil {
					l.Warnf("log file disabled: %v", err)
				} else {
					l = fl
				}
			}
			a.logger = l
			cmd.SetContext(log.WithLogger(cmd.Context(), l))

			// Skip git check for completion and help commands
			switch cmd.Name() {
			case "completion", cobra.ShellCompRequestCmd, "help", "projects":
				return nil
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all log output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errs.E(errs.KindUsage, err)
	})

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupProject, Title: "Project Commands:"},
		&cobra.Group{ID: GroupWorktree, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupUtility)
	rootCmd.SetCompletionCommandGroupID(GroupUtility)

	// Project commands
	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newProjectsCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))

	// Worktree commands
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newSetupCmd(a))
	rootCmd.AddCommand(newRebaseCmd(a))
	rootCmd.AddCommand(newSweepCmd(a))

	return rootCmd
}

// Execute runs wt with the process arguments and returns the exit code.
func Execute() int {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", styles.For(os.Stderr).Error("Error:"), err)
		return 1
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wt: failed to get working directory: %v\n", err)
		return 1
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return run(ctx, newApp(loadedCfg, workDir), os.Args[1:])
}

// run executes args against a and maps the outcome to an exit code.
func run(ctx context.Context, a *app, args []string) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, a.stdout)

	err := rootCmd.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Close()
	}
	if err == nil {
		return 0
	}

	s := styles.For(a.stderr)
	fmt.Fprintf(a.stderr, "%s %v\n", s.Error("Error:"), err)
	if errs.Is(err, errs.KindUsage) {
		fmt.Fprintln(a.stderr, s.Muted("Run 'wt -h' for help"))
	}
	return errs.ExitCode(err)
}

// noSubcommand rejects stray arguments to the root command as usage errors.
func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return errs.Usage("%s", msg)
}
