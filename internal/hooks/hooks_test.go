package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/wtproj/internal/log"
)

func TestKindNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind      Kind
		shellFunc string
		goFunc    string
	}{
		{KindCreate, "create_hook", "CreateHook"},
		{KindRemove, "remove_hook", "RemoveHook"},
		{KindRebase, "rebase_hook", "RebaseHook"},
		{KindSetup, "setup_hook", "SetupHook"},
	}

	for _, tt := range tests {
		if got := tt.kind.shellFunc(); got != tt.shellFunc {
			t.Errorf("%s.shellFunc() = %q, want %q", tt.kind, got, tt.shellFunc)
		}
		if got := tt.kind.goFunc(); got != tt.goFunc {
			t.Errorf("%s.goFunc() = %q, want %q", tt.kind, got, tt.goFunc)
		}
	}
}

type fakeProvider struct {
	kinds   map[Kind]bool
	err     error
	invoked []string
}

func (f *fakeProvider) Has(_ context.Context, kind Kind) bool {
	return f.kinds[kind]
}

func (f *fakeProvider) Invoke(_ context.Context, kind Kind, dir string) error {
	f.invoked = append(f.invoked, string(kind)+"@"+dir)
	return f.err
}

func TestDispatcher_FirstProviderWins(t *testing.T) {
	t.Parallel()

	first := &fakeProvider{kinds: map[Kind]bool{KindCreate: true}}
	second := &fakeProvider{kinds: map[Kind]bool{KindCreate: true, KindRemove: true}}
	d := &Dispatcher{Providers: []Provider{first, second}}
	ctx := context.Background()

	if !d.Invoke(ctx, KindCreate, "/w") {
		t.Error("Invoke(create) = false, want true")
	}
	if !d.Invoke(ctx, KindRemove, "/w") {
		t.Error("Invoke(remove) = false, want true")
	}
	if d.Invoke(ctx, KindRebase, "/w") {
		t.Error("Invoke(rebase) = true with no provider implementing it")
	}

	if len(first.invoked) != 1 || first.invoked[0] != "create@/w" {
		t.Errorf("first.invoked = %v", first.invoked)
	}
	if len(second.invoked) != 1 || second.invoked[0] != "remove@/w" {
		t.Errorf("second.invoked = %v", second.invoked)
	}
}

func TestDispatcher_FailureIsWarning(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&out, false, false))
	p := &fakeProvider{kinds: map[Kind]bool{KindSetup: true}, err: errors.New("exit status 1")}
	d := &Dispatcher{Providers: []Provider{p}}

	if !d.Invoke(ctx, KindSetup, "/w") {
		t.Fatal("Invoke(setup) = false, want true")
	}
	if !strings.Contains(out.String(), "Warning: setup hook failed: exit status 1") {
		t.Errorf("output = %q, want warning", out.String())
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShellProvider(t *testing.T) {
	t.Parallel()
	requireShell(t)

	hooksDir := t.TempDir()
	script := writeScript(t, hooksDir, "app.sh", `
create_hook() {
    echo created > marker
}

remove_hook() {
    echo "about to fail" >&2
    return 3
}
`)
	workDir := t.TempDir()
	var stdout, stderr bytes.Buffer
	p := NewShellProvider(script, "")
	p.Stdin = strings.NewReader("")
	p.Stdout = &stdout
	p.Stderr = &stderr
	ctx := context.Background()

	if !p.Has(ctx, KindCreate) {
		t.Error("Has(create) = false")
	}
	if p.Has(ctx, KindSetup) {
		t.Error("Has(setup) = true for undefined function")
	}

	if err := p.Invoke(ctx, KindCreate, workDir); err != nil {
		t.Fatalf("Invoke(create) = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(workDir, "marker"))
	if err != nil {
		t.Fatalf("hook did not run in work dir: %v", err)
	}
	if strings.TrimSpace(string(data)) != "created" {
		t.Errorf("marker = %q", data)
	}

	if err := p.Invoke(ctx, KindRemove, workDir); err == nil {
		t.Error("Invoke(remove) = nil, want error from non-zero exit")
	}
	if !strings.Contains(stderr.String(), "about to fail") {
		t.Errorf("stderr = %q, want hook output", stderr.String())
	}
}

func TestShellProvider_MissingScript(t *testing.T) {
	t.Parallel()

	p := NewShellProvider(filepath.Join(t.TempDir(), "nope.sh"), "bash")
	for _, kind := range Kinds {
		if p.Has(context.Background(), kind) {
			t.Errorf("Has(%s) = true for missing script", kind)
		}
	}
}

func TestShellProvider_FalseLastStatement(t *testing.T) {
	t.Parallel()
	requireShell(t)

	binDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(binDir, "setup_hook"), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	script := writeScript(t, t.TempDir(), "app.sh", `
create_hook() {
    echo created > marker
}

PATH="`+binDir+`:$PATH"
[ -n "$WT_SURELY_UNSET_VARIABLE" ] && export WT_SOMETHING=1
`)

	for _, shell := range []string{"bash", "sh"} {
		t.Run(shell, func(t *testing.T) {
			if _, err := exec.LookPath(shell); err != nil {
				t.Skipf("%s not available", shell)
			}
			workDir := t.TempDir()
			p := NewShellProvider(script, shell)
			p.Stdin = strings.NewReader("")
			p.Stdout = &bytes.Buffer{}
			p.Stderr = &bytes.Buffer{}
			ctx := context.Background()

			if !p.Has(ctx, KindCreate) {
				t.Fatal("Has(create) = false for a defined function")
			}
			if p.Has(ctx, KindSetup) {
				t.Error("Has(setup) = true for a command on PATH")
			}

			d := &Dispatcher{Providers: []Provider{p}}
			if !d.Invoke(ctx, KindCreate, workDir) {
				t.Fatal("Invoke(create) = false")
			}
			if _, err := os.Stat(filepath.Join(workDir, "marker")); err != nil {
				t.Errorf("hook did not run: %v", err)
			}
		})
	}
}

// Go hooks change the process working directory; these tests do not run in parallel.

func TestGoProvider(t *testing.T) {
	hooksDir := t.TempDir()
	script := writeScript(t, hooksDir, "app.go", `package main

import (
	"errors"
	"os"
)

func CreateHook() error {
	return os.WriteFile("marker", []byte("go"), 0o644)
}

func RemoveHook() error {
	return errors.New("boom")
}
`)
	workDir := t.TempDir()
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	p := NewGoProvider(script)
	ctx := context.Background()

	if !p.Has(ctx, KindCreate) {
		t.Fatal("Has(create) = false")
	}
	if p.Has(ctx, KindRebase) {
		t.Error("Has(rebase) = true for undeclared function")
	}

	if err := p.Invoke(ctx, KindCreate, workDir); err != nil {
		t.Fatalf("Invoke(create) = %v", err)
	}
	if _, err := os.Stat(filepath.Join(workDir, "marker")); err != nil {
		t.Errorf("hook did not run in work dir: %v", err)
	}

	err = p.Invoke(ctx, KindRemove, workDir)
	if err == nil || err.Error() != "boom" {
		t.Errorf("Invoke(remove) = %v, want boom", err)
	}

	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("working directory = %q, want restored %q", after, before)
	}
}

func TestGoProvider_BrokenScript(t *testing.T) {
	var out bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&out, false, false))
	script := writeScript(t, t.TempDir(), "app.go", "package main\n\nfunc CreateHook() error {\n")

	p := NewGoProvider(script)
	if p.Has(ctx, KindCreate) {
		t.Error("Has(create) = true for a script that does not compile")
	}
	if !strings.Contains(out.String(), "Warning: go hooks:") {
		t.Errorf("output = %q, want warning", out.String())
	}
}

func TestNewForProject_ShellBeforeGo(t *testing.T) {
	requireShell(t)

	hooksDir := t.TempDir()
	writeScript(t, hooksDir, "app.sh", "setup_hook() { echo shell > marker; }\n")
	writeScript(t, hooksDir, "app.go", `package main

import "os"

func SetupHook() error { return os.WriteFile("marker", []byte("go"), 0o644) }

func RebaseHook() error { return os.WriteFile("rebased", []byte("go"), 0o644) }
`)
	workDir := t.TempDir()
	ctx := context.Background()

	d := NewForProject(hooksDir, "bash", "app")
	if !d.Invoke(ctx, KindSetup, workDir) {
		t.Fatal("Invoke(setup) = false")
	}
	data, err := os.ReadFile(filepath.Join(workDir, "marker"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "shell" {
		t.Errorf("marker = %q, want shell hook to win", data)
	}

	if !d.Invoke(ctx, KindRebase, workDir) {
		t.Fatal("Invoke(rebase) = false, want Go fallback")
	}
	if _, err := os.Stat(filepath.Join(workDir, "rebased")); err != nil {
		t.Errorf("Go rebase hook did not run: %v", err)
	}

	if d.Invoke(ctx, KindRemove, workDir) {
		t.Error("Invoke(remove) = true with no hook defined")
	}
}
