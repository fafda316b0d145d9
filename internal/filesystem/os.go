// Package filesystem provides the operating-system backed file operations used
// to read manifests, inspect checkouts, and publish locked manifests.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Reader exposes the read-only operations used to load manifests and inspect checkouts.
type Reader interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	EvalSymlinks(path string) (string, error)
}

// Writer exposes the operations used to publish a file atomically.
type Writer interface {
	WriteFile(path string, data []byte, permissions fs.FileMode) error
	Rename(oldPath string, newPath string) error
	Remove(path string) error
	Chmod(path string, permissions fs.FileMode) error
}

// OSFileSystem implements Reader and Writer using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata, following symbolic links.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file with the supplied permissions.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, data, permissions)
}

// Rename renames a path, replacing the destination when it exists.
func (OSFileSystem) Rename(oldPath string, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// Remove deletes a file.
func (OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

// EvalSymlinks returns the path with every symbolic link resolved.
func (OSFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// Chmod sets the permission bits of a file regardless of the process umask.
func (OSFileSystem) Chmod(path string, permissions fs.FileMode) error {
	return os.Chmod(path, permissions)
}
