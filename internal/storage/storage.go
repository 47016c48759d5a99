// Package storage provides the ~/.wt state directory and atomic file writes.
package storage

import (
	"os"
	"path/filepath"
)

// WtDir returns the path to ~/.wt/. The directory is not created here:
// files below it create their parents on first write, so reading config or
// an empty registry leaves the home directory untouched.
func WtDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wt"), nil
}

// WriteFileAtomic writes data to path through a temp file and a rename,
// creating the parent directory if needed. Readers never observe a
// partially written file.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}
