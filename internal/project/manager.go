package project

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/git"
	"github.com/raphi011/wtproj/internal/hooks"
	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/resolve"
	"github.com/raphi011/wtproj/internal/ui/prompt"
	"github.com/raphi011/wtproj/internal/worktree"
)

// VCS is the version-control capability set the manager needs.
// *git.Client implements it.
type VCS interface {
	ListWorktrees(ctx context.Context, repoPath string) ([]git.WorktreeInfo, error)
	RefExists(ctx context.Context, dir string, kind git.RefKind, name string) bool
	DefaultBranch(ctx context.Context, dir, remote string) (string, bool)
	AddWorktree(ctx context.Context, repoPath, path string, opts git.AddOptions) error
	RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error
	Fetch(ctx context.Context, dir, remote string, prune bool) error
	Rebase(ctx context.Context, dir, onto string) error
	Clone(ctx context.Context, url, dest string) error
	PullFastForward(ctx context.Context, dir string) error
	CurrentBranch(ctx context.Context, dir string) (string, error)
}

// HookRunner runs a lifecycle hook in dir. *hooks.Dispatcher implements it.
type HookRunner interface {
	Invoke(ctx context.Context, kind hooks.Kind, dir string) bool
}

// Manager manages the worktrees of one project.
type Manager struct {
	Project registry.Project
	Store   registry.Store
	VCS     VCS
	Hooks   HookRunner
	Confirm prompt.Confirmer
	Remote  string
}

func (m *Manager) remote() string {
	if m.Remote == "" {
		return "origin"
	}
	return m.Remote
}

// Main returns the project's main worktree.
func (m *Manager) Main() worktree.Worktree {
	return worktree.For(m.Project, worktree.Main)
}

// Worktree returns the layout of worktree name.
func (m *Manager) Worktree(name string) worktree.Worktree {
	return worktree.For(m.Project, name)
}

// MainBranch returns the remote's default branch, falling back to a local
// main or master branch.
func (m *Manager) MainBranch(ctx context.Context) (string, error) {
	src := m.Main().Src
	if branch, ok := m.VCS.DefaultBranch(ctx, src, m.remote()); ok {
		return branch, nil
	}
	for _, candidate := range []string{"main", "master"} {
		if m.VCS.RefExists(ctx, src, git.RefLocal, candidate) {
			return candidate, nil
		}
	}
	return "", errs.ErrNoMainBranch
}

// IsValid reports whether worktree name has a src directory that git lists
// as a worktree of the main clone.
func (m *Manager) IsValid(ctx context.Context, name string) (bool, error) {
	wt := m.Worktree(name)
	info, err := os.Stat(wt.Src)
	if err != nil || !info.IsDir() {
		return false, nil
	}

	listed, err := m.VCS.ListWorktrees(ctx, m.Main().Src)
	if err != nil {
		return false, err
	}
	src := resolve.Canonical(wt.Src)
	for _, l := range listed {
		if resolve.Canonical(l.Path) == src {
			return true, nil
		}
	}
	return false, nil
}

// requireValid returns ErrInvalidWorktree with name suggestions when name
// is not a valid worktree.
func (m *Manager) requireValid(ctx context.Context, name string) (worktree.Worktree, error) {
	wt := m.Worktree(name)
	valid, err := m.IsValid(ctx, name)
	if err != nil {
		return wt, err
	}
	if valid {
		return wt, nil
	}

	if s := m.suggest(name); len(s) > 0 {
		return wt, fmt.Errorf("%w: %s (did you mean %s?)", errs.ErrInvalidWorktree, wt, strings.Join(s, ", "))
	}
	return wt, fmt.Errorf("%w: %s", errs.ErrInvalidWorktree, wt)
}

// suggest returns up to three existing worktree names that fuzzy-match name.
func (m *Manager) suggest(name string) []string {
	worktrees, err := worktree.Scan(m.Project)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		names = append(names, wt.Name)
	}

	var out []string
	for _, match := range fuzzy.Find(name, names) {
		out = append(out, match.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// fetch fetches the remote from the main clone. Failures only warn.
func (m *Manager) fetch(ctx context.Context, prune bool) {
	if err := m.VCS.Fetch(ctx, m.Main().Src, m.remote(), prune); err != nil {
		log.FromContext(ctx).Warnf("fetch failed, continuing with local refs: %v", err)
	}
}

// confirm asks question and maps a "no" to errs.ErrDeclined.
func (m *Manager) confirm(ctx context.Context, question string) error {
	ok, err := m.Confirm.Confirm(ctx, question)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrDeclined
	}
	return nil
}
