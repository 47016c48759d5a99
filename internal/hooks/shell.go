package hooks

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/raphi011/wtproj/internal/cmd"
	"github.com/raphi011/wtproj/internal/log"
)

// ShellProvider sources a shell script and calls <kind>_hook functions
// defined in it.
type ShellProvider struct {
	Script string
	Shell  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellProvider returns a provider for script run by shell ("bash" if empty).
func NewShellProvider(script, shell string) *ShellProvider {
	if shell == "" {
		shell = "bash"
	}
	return &ShellProvider{
		Script: script,
		Shell:  shell,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Has sources the script and checks that the hook is defined as a shell
// function. The exit status of the script's last statement is ignored and
// commands of the same name on PATH do not count.
func (p *ShellProvider) Has(ctx context.Context, kind Kind) bool {
	if _, err := os.Stat(p.Script); err != nil {
		return false
	}
	// bash reports "is a function", dash and zsh "is a shell function".
	check := `. "$1" >/dev/null 2>&1
case "$(command -V ` + kind.shellFunc() + ` 2>/dev/null)" in
*" function"*) exit 0 ;;
esac
exit 1`
	return cmd.RunContext(ctx, "", p.Shell, "-c", check, "wt-hook", p.Script) == nil
}

// Invoke sources the script and calls the hook function in dir.
// The hook's stdio is connected to the provider's.
func (p *ShellProvider) Invoke(ctx context.Context, kind Kind, dir string) error {
	script := `. "$1"; ` + kind.shellFunc()
	args := []string{"-c", script, "wt-hook", p.Script}

	c := exec.CommandContext(ctx, p.Shell, args...)
	c.Dir = dir
	c.Stdin = p.Stdin
	c.Stdout = p.Stdout
	c.Stderr = p.Stderr

	done := log.FromContext(ctx).Command(dir, p.Shell, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))
	return err
}
