package domain

import "os"

// FileSystem abstracts the file operations the credential store needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	UserHomeDir() (string, error)
}
