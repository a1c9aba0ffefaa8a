package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabasePath locates the directory that holds a database's files.
//
// It is an opaque token: the only valid values come from FromDir and
// WorkingDir. Open and Delete reject any other implementation with
// ErrInvalidPath.
type DatabasePath interface {
	databasePath()
}

// dirPath is the filesystem DatabasePath.
type dirPath struct {
	dir string
}

func (dirPath) databasePath() {}

// String returns the absolute directory.
func (p dirPath) String() string {
	return p.dir
}

// FromDir converts a directory into a DatabasePath. Relative directories
// are resolved against the working directory now, not at open time.
// The directory does not need to exist yet.
func FromDir(dir string) (DatabasePath, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidPath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %q: %w", ErrInvalidPath, dir, err)
	}
	return dirPath{dir: abs}, nil
}

// WorkingDir returns the process working directory as a DatabasePath.
func WorkingDir() (DatabasePath, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return dirPath{dir: wd}, nil
}

// resolveDir type-checks p and returns its directory.
func resolveDir(p DatabasePath) (string, error) {
	dp, ok := p.(dirPath)
	if !ok || dp.dir == "" {
		return "", fmt.Errorf("%w: got %T", ErrInvalidPath, p)
	}
	return dp.dir, nil
}

// resolveFile returns the database file for name inside p.
func resolveFile(p DatabasePath, name string) (string, error) {
	dir, err := resolveDir(p)
	if err != nil {
		return "", err
	}
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// validateName rejects names that would escape the database directory.
func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: database name %q", ErrInvalidConfig, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: database name %q contains a path separator", ErrInvalidConfig, name)
	}
	return nil
}
