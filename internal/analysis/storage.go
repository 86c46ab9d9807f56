package analysis

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage defines the interface for scratch file operations
type Storage interface {
	// Save writes data under name and returns the path on disk
	Save(name string, data []byte) (string, error)

	// Delete removes a file previously returned by Save.
	// Deleting a file that no longer exists is not an error.
	Delete(path string) error
}

// LocalStorage implements the Storage interface using a local working directory
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Save writes a scratch file into the working directory
func (l *LocalStorage) Save(name string, data []byte) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid scratch file name %q", name)
	}

	path := filepath.Join(l.basePath, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return path, nil
}

// Delete removes a scratch file
func (l *LocalStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
