package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/hooks"
	"github.com/raphi011/wtproj/internal/log"
	"github.com/raphi011/wtproj/internal/registry"
	"github.com/raphi011/wtproj/internal/resolve"
	"github.com/raphi011/wtproj/internal/worktree"
)

// InitOptions describes a new project.
type InitOptions struct {
	Parent string // directory that will contain the project root
	Name   string
	URL    string
}

// Init clones URL into <parent>/<name>/main/src, creates the main worktree's
// build and local directories, registers the project and runs its create
// hook. A failed clone removes the project directory again.
func Init(ctx context.Context, store registry.Store, vcs VCS, hooksRunner HookRunner, opts InitOptions) (registry.Project, error) {
	l := log.FromContext(ctx)

	if err := worktree.ValidateName(opts.Name); err != nil {
		return registry.Project{}, err
	}
	if _, found, err := registry.FindByName(store, opts.Name); err != nil {
		return registry.Project{}, err
	} else if found {
		return registry.Project{}, fmt.Errorf("%w: %s", errs.ErrProjectExists, opts.Name)
	}

	parent, err := filepath.Abs(opts.Parent)
	if err != nil {
		return registry.Project{}, fmt.Errorf("resolve %s: %w", opts.Parent, err)
	}
	p := registry.Project{Name: opts.Name, Path: filepath.Join(parent, opts.Name)}
	if _, err := os.Stat(p.Path); err == nil {
		return registry.Project{}, fmt.Errorf("%w: %s already exists", errs.ErrProjectExists, p.Path)
	}

	mainWt := worktree.For(p, worktree.Main)
	if err := os.MkdirAll(mainWt.Dir, 0o755); err != nil {
		return registry.Project{}, fmt.Errorf("create %s: %w", mainWt.Dir, err)
	}

	l.Printf("Cloning %s into %s\n", opts.URL, mainWt.Src)
	if err := vcs.Clone(ctx, opts.URL, mainWt.Src); err != nil {
		if rmErr := os.RemoveAll(p.Path); rmErr != nil {
			l.Warnf("failed to clean up %s: %v", p.Path, rmErr)
		}
		return registry.Project{}, fmt.Errorf("%w: %w", errs.ErrCloneFailed, err)
	}

	for _, dir := range []string{mainWt.Build, mainWt.Local} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return p, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := store.Add(p.Path, p.Name); err != nil {
		return p, fmt.Errorf("register project: %w", err)
	}
	l.Printf("Registered project %s at %s\n", p.Name, p.Path)

	hooksRunner.Invoke(ctx, hooks.KindCreate, mainWt.Src)
	return p, nil
}

// Delete unregisters the project and removes its directory tree after
// confirmation.
func (m *Manager) Delete(ctx context.Context) error {
	question := fmt.Sprintf("Delete project %s and everything under %s?", m.Project.Name, m.Project.Path)
	if err := m.confirm(ctx, question); err != nil {
		return err
	}
	if err := m.Store.Remove(m.Project.Path); err != nil {
		return fmt.Errorf("unregister project: %w", err)
	}
	if err := os.RemoveAll(m.Project.Path); err != nil {
		return fmt.Errorf("delete %s: %w", m.Project.Path, err)
	}
	log.FromContext(ctx).Printf("Deleted project %s\n", m.Project.Name)
	return nil
}

// Info describes a worktree for listing.
type Info struct {
	Name     string `json:"name" yaml:"name"`
	Branch   string `json:"branch" yaml:"branch"`
	Upstream string `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	Path     string `json:"path" yaml:"path"`
	Main     bool   `json:"main" yaml:"main"`
	Valid    bool   `json:"valid" yaml:"valid"`
}

// Worktrees lists the project's worktree directories joined with git's
// view of them. Directories git does not know are reported as invalid.
func (m *Manager) Worktrees(ctx context.Context) ([]Info, error) {
	found, err := worktree.Scan(m.Project)
	if err != nil {
		return nil, err
	}
	listed, err := m.VCS.ListWorktrees(ctx, m.Main().Src)
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]int, len(listed))
	for i, l := range listed {
		byPath[resolve.Canonical(l.Path)] = i
	}

	infos := make([]Info, 0, len(found))
	for _, wt := range found {
		info := Info{Name: wt.Name, Path: wt.Dir, Main: wt.IsMain()}
		if i, ok := byPath[resolve.Canonical(wt.Src)]; ok {
			info.Valid = true
			info.Branch = listed[i].Branch
			info.Upstream = listed[i].Upstream
		}
		infos = append(infos, info)
	}
	return infos, nil
}
