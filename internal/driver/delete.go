package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// companionSuffixes are the files the engine keeps next to a database.
var companionSuffixes = []string{"-journal", "-shm", "-wal"}

// Delete removes the database name inside path together with its journal,
// WAL and shared-memory files and any "<name>-mj*" super-journals.
//
// The boolean reports whether the database file or one of its companions
// was removed. Delete does not close or invalidate open Connections;
// deleting an open database is the caller's mistake.
//
// Returns:
//   - bool: true if anything was removed
//   - error: ErrInvalidPath for a foreign path (nothing is touched), or
//     ErrInvalidConfig for a bad name
func Delete(path DatabasePath, name string, opts ...Option) (bool, error) {
	file, err := resolveFile(path, name)
	if err != nil {
		return false, err
	}
	o := buildOptions(opts)

	deleted := remove(file, o)
	for _, suffix := range companionSuffixes {
		deleted = remove(file+suffix, o) || deleted
	}

	dir := filepath.Dir(file)
	if entries, err := os.ReadDir(dir); err == nil {
		prefix := name + "-mj"
		for _, e := range entries {
			if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
				deleted = remove(filepath.Join(dir, e.Name()), o) || deleted
			}
		}
	}

	o.logger.Debug("database deleted", "path", file, "removed", deleted)
	return deleted, nil
}

// remove deletes one file, reporting whether it was there to delete.
func remove(file string, o options) bool {
	err := os.Remove(file)
	switch {
	case err == nil:
		return true
	case errors.Is(err, os.ErrNotExist):
		return false
	default:
		o.logger.Warn("failed to remove database file", "path", file, "error", err)
		return false
	}
}
