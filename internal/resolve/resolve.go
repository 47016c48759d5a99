package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/wtproj/internal/errs"
	"github.com/raphi011/wtproj/internal/registry"
)

// Project returns the first registered project whose root encloses cwd.
// It returns errs.ErrNotInProject when the registry is empty or nothing matches.
func Project(store registry.Store, cwd string) (registry.Project, error) {
	projects, err := store.List()
	if err != nil {
		return registry.Project{}, err
	}
	if len(projects) == 0 {
		return registry.Project{}, errs.ErrNotInProject
	}

	dir := Canonical(cwd)
	for _, p := range projects {
		if Within(dir, Canonical(p.Path)) {
			return p, nil
		}
	}
	return registry.Project{}, errs.ErrNotInProject
}

// Within reports whether path equals root or lies below it.
// Both arguments must already be canonical.
func Within(path, root string) bool {
	if path == root {
		return true
	}
	if root == string(os.PathSeparator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(os.PathSeparator))
}

// Canonical returns the absolute, symlink-resolved form of path.
// For a path that does not exist, its longest existing ancestor is resolved
// and the missing tail re-joined.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	var tail string
	for dir := abs; ; {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, tail)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		tail = filepath.Join(filepath.Base(dir), tail)
		dir = parent
	}
}
