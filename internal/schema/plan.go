package schema

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Step file name suffixes.
const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Execer runs a statement. *driver.Connection and *sql.Tx satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Step is one versioned SQL script.
type Step struct {
	// Version is the schema version the step produces.
	Version int

	// Name is the description part of the file name.
	Name string

	// SQL is the script body. It may hold several statements.
	SQL string
}

// Plan is an ordered list of steps with unique versions.
type Plan struct {
	steps []Step
}

// NewPlan builds a plan from steps, sorting them by version.
func NewPlan(steps ...Step) (*Plan, error) {
	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	for i, s := range sorted {
		if s.Version < 1 {
			return nil, fmt.Errorf("%w: version %d in step %q", ErrInvalidStep, s.Version, s.Name)
		}
		if i > 0 && sorted[i-1].Version == s.Version {
			return nil, fmt.Errorf("%w: %d (%s, %s)", ErrDuplicateStep, s.Version, sorted[i-1].Name, s.Name)
		}
	}
	return &Plan{steps: sorted}, nil
}

// Load reads every step file in dir of fsys.
//
// Parameters:
//   - fsys: Filesystem holding the plan (os.DirFS or an embed.FS)
//   - dir: Directory within fsys, "." for the root
//
// Returns:
//   - *Plan: Steps ordered by version
//   - error: If the directory cannot be read or a step is malformed
func Load(fsys fs.FS, dir string) (*Plan, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory %q: %w", dir, err)
	}

	var steps []Step
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, ok, err := parseStepFilename(entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading step %s: %w", entry.Name(), err)
		}
		steps = append(steps, Step{Version: version, Name: name, SQL: string(body)})
	}

	return NewPlan(steps...)
}

// parseStepFilename extracts the version and description from a step file
// name. ok is false for files that are not up steps.
func parseStepFilename(file string) (version int, name string, ok bool, err error) {
	if !strings.HasSuffix(file, upSuffix) || strings.HasSuffix(file, downSuffix) {
		return 0, "", false, nil
	}

	base := strings.TrimSuffix(file, upSuffix)
	number, name, _ := strings.Cut(base, "_")

	version, convErr := strconv.Atoi(number)
	if convErr != nil || version < 1 {
		return 0, "", false, fmt.Errorf("%w: %s", ErrInvalidStep, file)
	}
	return version, name, true, nil
}

// Steps returns a copy of the plan's steps.
func (p *Plan) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Latest returns the highest version the plan produces, or 0 when empty.
func (p *Plan) Latest() int {
	if len(p.steps) == 0 {
		return 0
	}
	return p.steps[len(p.steps)-1].Version
}

// Create builds a fresh schema at version.
func (p *Plan) Create(ctx context.Context, exec Execer, version int) error {
	return p.Upgrade(ctx, exec, 0, version)
}

// Upgrade applies the steps after from up to and including to.
func (p *Plan) Upgrade(ctx context.Context, exec Execer, from, to int) error {
	if from < 0 || to < from || to > p.Latest() {
		return fmt.Errorf("%w: %d to %d (latest %d)", ErrVersionOutOfRange, from, to, p.Latest())
	}

	for _, s := range p.steps {
		if s.Version <= from || s.Version > to {
			continue
		}
		if _, err := exec.ExecContext(ctx, s.SQL); err != nil {
			return fmt.Errorf("applying step %04d (%s): %w", s.Version, s.Name, err)
		}
	}
	return nil
}
