// Package fsutil provides filesystem primitives shared by the extraction and
// reporting stages: sentinel errors, scoped reads, and atomic writes.
//
// All helpers operate through an afero.Fs so callers can run against an
// in-memory filesystem in tests.
package fsutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Sentinel errors for common failure classes.
var (
	// ErrNotFound indicates the path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates a directory where a file was expected.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNotDirectory indicates a file where a directory was expected.
	ErrNotDirectory = errors.New("not a directory")
)

// StatDir verifies that path exists and is a readable directory.
func StatDir(fs afero.Fs, path string) error {
	stat, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return nil
}

// ReadFile reads a regular file, mapping OS errors to sentinel errors.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	stat, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}
