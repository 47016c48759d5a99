package project

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/git"
	"github.com/raphi011/wtproj/internal/hooks"
	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/worktree"
)

// Create adds worktree name, branching from base (the main branch if empty)
// when no branch of that name exists yet.
func (m *Manager) Create(ctx context.Context, name, base string) (worktree.Worktree, error) {
	l := log.FromContext(ctx)

	if name == worktree.Main {
		return worktree.Worktree{}, errs.ErrCannotCreateMain
	}
	if err := worktree.ValidateName(name); err != nil {
		return worktree.Worktree{}, err
	}
	wt := m.Worktree(name)
	if _, err := os.Stat(wt.Dir); err == nil {
		return wt, fmt.Errorf("%w: %s", errs.ErrAlreadyExists, wt.Dir)
	}

	m.fetch(ctx, false)

	opts, err := m.branchFor(ctx, name, base)
	if err != nil {
		return wt, err
	}
	l.Debug("creating worktree", "name", name, "branch", opts.Branch, "start", opts.StartPoint, "track", opts.Track)

	if err := os.MkdirAll(wt.Dir, 0o755); err != nil {
		return wt, fmt.Errorf("create %s: %w", wt.Dir, err)
	}
	if err := m.VCS.AddWorktree(ctx, m.Main().Src, wt.Src, opts); err != nil {
		if rmErr := os.RemoveAll(wt.Dir); rmErr != nil {
			l.Warnf("failed to clean up %s: %v", wt.Dir, rmErr)
		}
		return wt, fmt.Errorf("%w: %w", errs.ErrWorktreeCreateFailed, err)
	}

	for _, dir := range []string{wt.Build, wt.Local} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wt, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	l.Printf("Created worktree %s at %s\n", wt, wt.Dir)
	m.Hooks.Invoke(ctx, hooks.KindCreate, wt.Src)
	return wt, nil
}

// branchFor resolves how the worktree's branch is checked out.
func (m *Manager) branchFor(ctx context.Context, name, base string) (git.AddOptions, error) {
	src := m.Main().Src
	remote := m.remote()

	if m.VCS.RefExists(ctx, src, git.RefLocal, name) {
		warnBaseIgnored(ctx, base, "branch "+name+" already exists")
		return git.AddOptions{Branch: name}, nil
	}
	if m.VCS.RefExists(ctx, src, git.RefRemote, remote+"/"+name) {
		warnBaseIgnored(ctx, base, "tracking existing "+remote+"/"+name)
		return git.AddOptions{
			Branch:     name,
			CreateNew:  true,
			StartPoint: remote + "/" + name,
			Track:      true,
		}, nil
	}

	if base == "" {
		mainBranch, err := m.MainBranch(ctx)
		if err != nil {
			return git.AddOptions{}, err
		}
		base = mainBranch
	}
	start, err := m.startPoint(ctx, base)
	if err != nil {
		return git.AddOptions{}, err
	}
	return git.AddOptions{Branch: name, CreateNew: true, StartPoint: start}, nil
}

func warnBaseIgnored(ctx context.Context, base, reason string) {
	if base != "" {
		log.FromContext(ctx).Warnf("ignoring base %s: %s", base, reason)
	}
}

// startPoint prefers a local base branch over its remote counterpart.
func (m *Manager) startPoint(ctx context.Context, base string) (string, error) {
	src := m.Main().Src
	if m.VCS.RefExists(ctx, src, git.RefLocal, base) {
		return base, nil
	}
	remoteRef := m.remote() + "/" + base
	if m.VCS.RefExists(ctx, src, git.RefRemote, remoteRef) {
		return remoteRef, nil
	}
	return "", fmt.Errorf("%w: %s", errs.ErrBaseBranchNotFound, base)
}

// Remove deletes worktree name after confirmation.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if name == worktree.Main {
		return errs.ErrCannotRemoveMain
	}
	if err := worktree.ValidateName(name); err != nil {
		return err
	}
	wt, err := m.requireValid(ctx, name)
	if err != nil {
		return err
	}
	if err := m.confirm(ctx, fmt.Sprintf("Remove worktree %s (%s)?", wt, wt.Dir)); err != nil {
		return err
	}
	return m.Detach(ctx, wt)
}

// Detach removes a worktree without asking: it runs the remove hook,
// detaches the worktree from git (retrying once with --force) and deletes
// its directory tree.
func (m *Manager) Detach(ctx context.Context, wt worktree.Worktree) error {
	l := log.FromContext(ctx)
	if wt.IsMain() {
		return errs.ErrCannotRemoveMain
	}

	m.Hooks.Invoke(ctx, hooks.KindRemove, wt.Src)

	mainSrc := m.Main().Src
	if err := m.VCS.RemoveWorktree(ctx, mainSrc, wt.Src, false); err != nil {
		l.Debug("worktree remove failed, retrying with --force", "worktree", wt.String(), "error", err)
		if err := m.VCS.RemoveWorktree(ctx, mainSrc, wt.Src, true); err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrWorktreeDetachFailed, wt, err)
		}
	}

	if err := os.RemoveAll(wt.Dir); err != nil {
		return fmt.Errorf("delete %s: %w", wt.Dir, err)
	}
	l.Printf("Removed worktree %s\n", wt)
	return nil
}

// Rebase rebases worktree name onto <remote>/<base> (the main branch if
// base is empty). A conflicting rebase is left in progress.
func (m *Manager) Rebase(ctx context.Context, name, base string) error {
	l := log.FromContext(ctx)

	if name == worktree.Main {
		return errs.ErrCannotRebaseMain
	}
	if err := worktree.ValidateName(name); err != nil {
		return err
	}
	wt, err := m.requireValid(ctx, name)
	if err != nil {
		return err
	}

	if base == "" {
		if base, err = m.MainBranch(ctx); err != nil {
			return err
		}
	}
	onto := m.remote() + "/" + base

	// fetch from the main clone only updates remote-tracking refs
	m.fetch(ctx, false)

	if !m.VCS.RefExists(ctx, m.Main().Src, git.RefRemote, onto) {
		return fmt.Errorf("%w: %s", errs.ErrBaseBranchNotFound, onto)
	}

	l.Printf("Rebasing %s onto %s\n", wt, onto)
	if err := m.VCS.Rebase(ctx, wt.Src, onto); err != nil {
		if errors.Is(err, errs.ErrRebaseConflict) {
			l.Printf("Resolve the conflicts in %s, then run 'git rebase --continue' (or 'git rebase --abort' to give up).\n", wt.Src)
			return err
		}
		return errs.E(errs.KindExternal, err)
	}

	m.Hooks.Invoke(ctx, hooks.KindRebase, wt.Src)
	return nil
}

// Setup re-runs the setup hook of worktree name.
func (m *Manager) Setup(ctx context.Context, name string) error {
	if err := worktree.ValidateName(name); err != nil {
		return err
	}
	wt, err := m.requireValid(ctx, name)
	if err != nil {
		return err
	}
	if !m.Hooks.Invoke(ctx, hooks.KindSetup, wt.Src) {
		log.FromContext(ctx).Printf("No setup hook defined for %s\n", m.Project.Name)
	}
	return nil
}

// Update fetches the remote and fast-forwards the branch checked out in the
// main clone. A detached main is refused before anything is fetched.
func (m *Manager) Update(ctx context.Context) error {
	src := m.Main().Src
	branch, err := m.VCS.CurrentBranch(ctx, src)
	if err != nil {
		return errs.E(errs.KindExternal, err)
	}
	if branch == "" {
		return fmt.Errorf("%w (%s); check out a branch in %s first", errs.ErrDetachedMain, m.Project.Name, src)
	}
	m.fetch(ctx, false)
	if err := m.VCS.PullFastForward(ctx, src); err != nil {
		return errs.E(errs.KindExternal, err)
	}
	log.FromContext(ctx).Printf("Updated %s (%s)\n", m.Main(), branch)
	return nil
}
