package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/wtproj/internal/git"
	"github.com/raphi011/wtproj/internal/hooks"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/ui/prompt"
	"github.com/raphi011/wtproj/internal/worktree"
)

// fakeVCS keeps branch and worktree state in memory and records every call
// into a shared journal.
type fakeVCS struct {
	journal *[]string

	defaultBranch string
	mainBranch    string // checked out in main; "" means detached
	local         map[string]bool
	remote        map[string]bool
	worktrees     []git.WorktreeInfo

	added []git.AddOptions

	fetchErr      error
	addErr        error
	removeErr     error // returned by a plain remove
	forceErr      error // returned by a forced remove
	rebaseErr     error
	cloneErr      error
	pullErr       error
	rebasedOnto   []string
	pulledIn      []string
	clonedInto    []string
	fetchedPruned []bool
}

func newFakeVCS(journal *[]string) *fakeVCS {
	return &fakeVCS{journal: journal, local: map[string]bool{}, remote: map[string]bool{}}
}

func (f *fakeVCS) record(call string) {
	*f.journal = append(*f.journal, call)
}

func (f *fakeVCS) ListWorktrees(_ context.Context, _ string) ([]git.WorktreeInfo, error) {
	f.record("list")
	return append([]git.WorktreeInfo(nil), f.worktrees...), nil
}

func (f *fakeVCS) RefExists(_ context.Context, _ string, kind git.RefKind, name string) bool {
	f.record("ref " + name)
	if kind == git.RefRemote {
		return f.remote[name]
	}
	return f.local[name]
}

func (f *fakeVCS) DefaultBranch(_ context.Context, _, _ string) (string, bool) {
	f.record("default-branch")
	return f.defaultBranch, f.defaultBranch != ""
}

func (f *fakeVCS) AddWorktree(_ context.Context, _, path string, opts git.AddOptions) error {
	f.record("add " + opts.Branch)
	f.added = append(f.added, opts)
	if f.addErr != nil {
		return f.addErr
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	if opts.CreateNew {
		f.local[opts.Branch] = true
	}
	f.worktrees = append(f.worktrees, git.WorktreeInfo{Path: path, Branch: opts.Branch})
	return nil
}

func (f *fakeVCS) RemoveWorktree(_ context.Context, _, path string, force bool) error {
	if force {
		f.record("remove --force")
		if f.forceErr != nil {
			return f.forceErr
		}
	} else {
		f.record("remove")
		if f.removeErr != nil {
			return f.removeErr
		}
	}
	kept := f.worktrees[:0]
	for _, wt := range f.worktrees {
		if wt.Path != path {
			kept = append(kept, wt)
		}
	}
	f.worktrees = kept
	return os.RemoveAll(path)
}

func (f *fakeVCS) Fetch(_ context.Context, _, _ string, prune bool) error {
	f.record("fetch")
	f.fetchedPruned = append(f.fetchedPruned, prune)
	return f.fetchErr
}

func (f *fakeVCS) Rebase(_ context.Context, _, onto string) error {
	f.record("rebase " + onto)
	f.rebasedOnto = append(f.rebasedOnto, onto)
	return f.rebaseErr
}

func (f *fakeVCS) Clone(_ context.Context, _, dest string) error {
	f.record("clone")
	f.clonedInto = append(f.clonedInto, dest)
	if f.cloneErr != nil {
		return f.cloneErr
	}
	return os.MkdirAll(dest, 0o755)
}

func (f *fakeVCS) PullFastForward(_ context.Context, dir string) error {
	f.record("pull")
	f.pulledIn = append(f.pulledIn, dir)
	return f.pullErr
}

func (f *fakeVCS) CurrentBranch(_ context.Context, _ string) (string, error) {
	f.record("current-branch")
	return f.mainBranch, nil
}

// fakeHooks records invoked hooks into the shared journal.
type fakeHooks struct {
	journal *[]string
	invoked []string
}

func (h *fakeHooks) Invoke(_ context.Context, kind hooks.Kind, dir string) bool {
	*h.journal = append(*h.journal, "hook "+string(kind))
	h.invoked = append(h.invoked, string(kind)+"@"+dir)
	return true
}

type fixture struct {
	m       *Manager
	vcs     *fakeVCS
	hooks   *fakeHooks
	confirm *prompt.Static
	store   *registry.Memory
	journal *[]string
}

// newFixture creates a project with a main worktree on disk and a fake VCS
// whose main branch is "main".
func newFixture(t *testing.T) *fixture {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := registry.Project{Name: "app", Path: filepath.Join(root, "app")}
	mainWt := worktree.For(p, worktree.Main)
	for _, dir := range []string{mainWt.Src, mainWt.Build, mainWt.Local} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	journal := &[]string{}
	vcs := newFakeVCS(journal)
	vcs.defaultBranch = "main"
	vcs.mainBranch = "main"
	vcs.local["main"] = true
	vcs.remote["origin/main"] = true
	vcs.worktrees = []git.WorktreeInfo{{Path: mainWt.Src, Branch: "main", Upstream: "refs/remotes/origin/main"}}

	store := &registry.Memory{}
	_ = store.Add(p.Path, p.Name)
	h := &fakeHooks{journal: journal}
	confirm := &prompt.Static{}

	return &fixture{
		m: &Manager{
			Project: p,
			Store:   store,
			VCS:     vcs,
			Hooks:   h,
			Confirm: confirm,
			Remote:  "origin",
		},
		vcs:     vcs,
		hooks:   h,
		confirm: confirm,
		store:   store,
		journal: journal,
	}
}

func (f *fixture) resetJournal() {
	*f.journal = nil
}

var errFake = errors.New("fatal: something went wrong")
