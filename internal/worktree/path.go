// Package worktree defines the on-disk project convention:
//
//	<project>/<worktree>/src    checkout (full clone for main, linked worktree otherwise)
//	<project>/<worktree>/build  build output
//	<project>/<worktree>/local  untracked per-worktree files
package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/registry"
)

// Main is the name of the worktree holding the full clone.
const Main = "main"

const (
	SrcDir   = "src"
	BuildDir = "build"
	LocalDir = "local"
)

// Worktree is a named worktree of a project with its fixed subdirectories.
type Worktree struct {
	Name    string
	Project registry.Project
	Dir     string
	Src     string
	Build   string
	Local   string
}

// For returns the layout of worktree name inside project p.
func For(p registry.Project, name string) Worktree {
	dir := filepath.Join(p.Path, name)
	return Worktree{
		Name:    name,
		Project: p,
		Dir:     dir,
		Src:     filepath.Join(dir, SrcDir),
		Build:   filepath.Join(dir, BuildDir),
		Local:   filepath.Join(dir, LocalDir),
	}
}

// IsMain reports whether w is the project's main worktree.
func (w Worktree) IsMain() bool {
	return w.Name == Main
}

// ValidateName rejects names that cannot be used as a single directory
// component or that git would read as an option.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errs.Usage("worktree name must not be empty")
	case name == "." || name == "..":
		return errs.Usage("invalid worktree name %q", name)
	case strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/"):
		return errs.Usage("worktree name %q must not contain '/'", name)
	case strings.HasPrefix(name, "-"):
		return errs.Usage("worktree name %q must not start with '-'", name)
	}
	return nil
}

// String returns "project/name".
func (w Worktree) String() string {
	return fmt.Sprintf("%s/%s", w.Project.Name, w.Name)
}

// Scan enumerates the worktrees of p structurally: every child directory of
// the project root that contains a src directory. Entries are sorted by name.
// Whether each one is registered with git is not checked.
func Scan(p registry.Project) ([]Worktree, error) {
	entries, err := os.ReadDir(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", p.Name, err)
	}

	var worktrees []Worktree
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		wt := For(p, e.Name())
		if info, err := os.Stat(wt.Src); err == nil && info.IsDir() {
			worktrees = append(worktrees, wt)
		}
	}
	return worktrees, nil
}
