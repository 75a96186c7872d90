// Package filesystem implements domain.FileSystem on the local disk.
package filesystem

import (
	"os"

	"courier/internal/domain"
)

// Adapter provides file system operations.
type Adapter struct{}

var _ domain.FileSystem = (*Adapter)(nil)

// New creates a new filesystem adapter.
func New() *Adapter {
	return &Adapter{}
}

// ReadFile reads a file from disk.
func (a *Adapter) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file and enforces perm on an existing file as well.
func (a *Adapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// MkdirAll creates a directory and all necessary parents.
func (a *Adapter) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove deletes a file.
func (a *Adapter) Remove(path string) error {
	return os.Remove(path)
}

// UserHomeDir returns the user's home directory.
func (a *Adapter) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}
