// Package filex holds the filesystem helpers used around container files.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotRegular is returned when something other than a regular file sits
// at a path that should hold a container.
var ErrNotRegular = errors.New("not a regular file")

// sqliteSidecars are the files SQLite may leave next to a database.
var sqliteSidecars = []string{"-journal", "-wal", "-shm"}

// EnsureParentDir creates the directory that will hold path, if missing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// RegularFileExists reports whether a regular file is present at path.
// Directories and other non-regular entries yield ErrNotRegular.
func RegularFileExists(path string) (bool, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return false, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	return true, nil
}

// RemoveArtifacts deletes path and any SQLite sidecar files next to it.
// Missing files are not an error.
func RemoveArtifacts(path string) error {
	var errs []error
	for _, p := range append([]string{path}, sidecarPaths(path)...) {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

func sidecarPaths(path string) []string {
	out := make([]string, 0, len(sqliteSidecars))
	for _, s := range sqliteSidecars {
		out = append(out, path+s)
	}
	return out
}
