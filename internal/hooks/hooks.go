package hooks

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/raphi011/wtproj/internal/log"
)

// Kind identifies the lifecycle event a hook runs for.
type Kind string

const (
	KindCreate Kind = "create"
	KindRemove Kind = "remove"
	KindRebase Kind = "rebase"
	KindSetup  Kind = "setup"
)

// Kinds lists every hook kind.
var Kinds = []Kind{KindCreate, KindRemove, KindRebase, KindSetup}

// shellFunc is the shell function name for k, e.g. "create_hook".
func (k Kind) shellFunc() string {
	return string(k) + "_hook"
}

// goFunc is the Go function name for k, e.g. "CreateHook".
func (k Kind) goFunc() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:]) + "Hook"
}

// Provider is a source of hook implementations for one project.
type Provider interface {
	// Has reports whether the provider implements kind.
	Has(ctx context.Context, kind Kind) bool
	// Invoke runs the hook with dir as working directory.
	Invoke(ctx context.Context, kind Kind, dir string) error
}

// Dispatcher runs a hook through the first provider that implements it.
type Dispatcher struct {
	Providers []Provider
}

// NewForProject returns the dispatcher for project, checking the shell
// script before the Go script in hooksDir.
func NewForProject(hooksDir, shell, project string) *Dispatcher {
	return &Dispatcher{Providers: []Provider{
		NewShellProvider(filepath.Join(hooksDir, project+".sh"), shell),
		NewGoProvider(filepath.Join(hooksDir, project+".go")),
	}}
}

// Invoke runs the kind hook in dir. It reports whether a hook ran.
// A failing hook is logged as a warning and otherwise ignored.
func (d *Dispatcher) Invoke(ctx context.Context, kind Kind, dir string) bool {
	l := log.FromContext(ctx)
	for _, p := range d.Providers {
		if !p.Has(ctx, kind) {
			continue
		}
		l.Printf("Running %s hook...\n", kind)
		if err := p.Invoke(ctx, kind, dir); err != nil {
			l.Warnf("%s hook failed: %v", kind, err)
		}
		return true
	}
	l.Debug("no hook", "kind", kind)
	return false
}
