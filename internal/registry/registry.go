// Package registry manages the project registry, a text file with one
// "<absolute-path>:<project-name>" record per line in insertion order.
//
// The file is not locked. Concurrent wt invocations race on the
// read-modify-write in [FileStore.Remove]; the last writer wins.
package registry

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/wtproj/internal/storage"
)

// Project is a registered project root.
type Project struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Store persists the path -> name mapping.
type Store interface {
	// Add appends a record. Duplicates are not checked.
	Add(path, name string) error
	// Remove drops every record whose path matches exactly.
	// A missing file or record is not an error.
	Remove(path string) error
	// List returns all records in file order.
	List() ([]Project, error)
}

// FileStore is the on-disk Store.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
// The file and its directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns ~/.wt/projects.
func DefaultPath() (string, error) {
	dir, err := storage.WtDir()
	if err != nil {
		return "", fmt.Errorf("get state directory: %w", err)
	}
	return filepath.Join(dir, "projects"), nil
}

// Add appends "path:name" to the registry file.
func (s *FileStore) Add(path, name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	// A hand-edited file may lack the final newline.
	sep, err := missingNewline(f)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%s%s:%s\n", sep, path, name); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func missingNewline(f *os.File) (string, error) {
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return "", err
	}
	if last[0] == '\n' {
		return "", nil
	}
	return "\n", nil
}

// Remove rewrites the registry without the records for path.
func (s *FileStore) Remove(path string) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read registry: %w", err)
	}

	var kept bytes.Buffer
	removed := false
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		if p, ok := parseLine(line); ok && p.Path == path {
			removed = true
			continue
		}
		kept.WriteString(line)
		kept.WriteByte('\n')
	}

	if !removed {
		return nil
	}
	if err := storage.WriteFileAtomic(s.path, kept.Bytes()); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// List reads all records. A missing file yields an empty list.
func (s *FileStore) List() ([]Project, error) {
	var projects []Project
	for p, err := range s.All() {
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// All yields records lazily in file order, stopping at the first read error.
func (s *FileStore) All() iter.Seq2[Project, error] {
	return func(yield func(Project, error) bool) {
		f, err := os.Open(s.path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				yield(Project{}, fmt.Errorf("read registry: %w", err))
			}
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			p, ok := parseLine(scanner.Text())
			if !ok {
				continue
			}
			if !yield(p, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Project{}, fmt.Errorf("read registry: %w", err))
		}
	}
}

// parseLine splits a record on its last colon. Paths containing ':' are
// ambiguous and unsupported.
func parseLine(line string) (Project, bool) {
	line = strings.TrimRight(line, "\r")
	idx := strings.LastIndex(line, ":")
	if idx <= 0 || idx == len(line)-1 {
		return Project{}, false
	}
	return Project{Path: line[:idx], Name: line[idx+1:]}, true
}

// FindByName returns the first project registered under name.
func FindByName(s Store, name string) (Project, bool, error) {
	projects, err := s.List()
	if err != nil {
		return Project{}, false, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, true, nil
		}
	}
	return Project{}, false, nil
}

// Memory is an in-memory Store.
type Memory struct {
	Projects []Project
}

// Add appends a record.
func (m *Memory) Add(path, name string) error {
	m.Projects = append(m.Projects, Project{Path: path, Name: name})
	return nil
}

// Remove drops every record for path.
func (m *Memory) Remove(path string) error {
	kept := m.Projects[:0]
	for _, p := range m.Projects {
		if p.Path != path {
			kept = append(kept, p)
		}
	}
	m.Projects = kept
	return nil
}

// List returns a copy of the records.
func (m *Memory) List() ([]Project, error) {
	return append([]Project(nil), m.Projects...), nil
}
