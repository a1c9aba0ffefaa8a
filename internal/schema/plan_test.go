package schema

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"
)

// recordingExecer collects executed statements.
type recordingExecer struct {
	queries []string
	failOn  string
}

var errExec = errors.New("exec failed")

func (r *recordingExecer) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	if query == r.failOn {
		return nil, errExec
	}
	r.queries = append(r.queries, query)
	return nil, nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"plan/0001_create_notes.up.sql":   {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"plan/0001_create_notes.down.sql": {Data: []byte("DROP TABLE notes;")},
		"plan/0002_add_body.up.sql":       {Data: []byte("ALTER TABLE notes ADD COLUMN body TEXT;")},
		"plan/0004_add_tags.up.sql":       {Data: []byte("CREATE TABLE tags (name TEXT);")},
		"plan/README.md":                  {Data: []byte("not a step")},
		"plan/nested/0003_skip.up.sql":    {Data: []byte("SELECT 1;")},
	}
}

func TestLoad(t *testing.T) {
	plan, err := Load(testFS(), "plan")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	steps := plan.Steps()
	if len(steps) != 3 {
		t.Fatalf("len(Steps()) = %d, want 3", len(steps))
	}

	want := []struct {
		version int
		name    string
	}{
		{1, "create_notes"},
		{2, "add_body"},
		{4, "add_tags"},
	}
	for i, w := range want {
		if steps[i].Version != w.version || steps[i].Name != w.name {
			t.Errorf("Steps()[%d] = %d %q, want %d %q", i, steps[i].Version, steps[i].Name, w.version, w.name)
		}
	}
	if plan.Latest() != 4 {
		t.Errorf("Latest() = %d, want 4", plan.Latest())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr error
	}{
		{
			name: "duplicate version",
			fsys: fstest.MapFS{
				"0001_a.up.sql": {Data: []byte("SELECT 1;")},
				"1_b.up.sql":    {Data: []byte("SELECT 2;")},
			},
			wantErr: ErrDuplicateStep,
		},
		{
			name:    "non-numeric version",
			fsys:    fstest.MapFS{"first_a.up.sql": {Data: []byte("SELECT 1;")}},
			wantErr: ErrInvalidStep,
		},
		{
			name:    "zero version",
			fsys:    fstest.MapFS{"0000_a.up.sql": {Data: []byte("SELECT 1;")}},
			wantErr: ErrInvalidStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.fsys, "."); !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(fstest.MapFS{}, "missing"); err == nil {
		t.Error("Load() of a missing directory succeeded")
	}
}

func TestLoad_Empty(t *testing.T) {
	plan, err := Load(fstest.MapFS{"README.md": {Data: []byte("x")}}, ".")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if plan.Latest() != 0 {
		t.Errorf("Latest() = %d, want 0", plan.Latest())
	}
	if err := plan.Create(context.Background(), &recordingExecer{}, 1); !errors.Is(err, ErrVersionOutOfRange) {
		t.Errorf("Create(1) on empty plan error = %v, want ErrVersionOutOfRange", err)
	}
}

func TestPlan_CreateAndUpgrade(t *testing.T) {
	plan, err := Load(testFS(), "plan")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		from    int
		to      int
		want    int
		wantErr error
	}{
		{name: "create at 1", from: 0, to: 1, want: 1},
		{name: "create at latest", from: 0, to: 4, want: 3},
		{name: "create inside a gap", from: 0, to: 3, want: 2},
		{name: "upgrade 1 to 2", from: 1, to: 2, want: 1},
		{name: "upgrade 2 to 4", from: 2, to: 4, want: 1},
		{name: "same version", from: 2, to: 2, want: 0},
		{name: "beyond latest", from: 1, to: 5, wantErr: ErrVersionOutOfRange},
		{name: "backwards", from: 3, to: 1, wantErr: ErrVersionOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recordingExecer{}
			err := plan.Upgrade(ctx, exec, tt.from, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Upgrade() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Upgrade() error = %v", err)
			}
			if len(exec.queries) != tt.want {
				t.Errorf("executed %d steps, want %d: %v", len(exec.queries), tt.want, exec.queries)
			}
		})
	}
}

func TestPlan_StepErrorStops(t *testing.T) {
	plan, err := NewPlan(
		Step{Version: 2, Name: "b", SQL: "B"},
		Step{Version: 1, Name: "a", SQL: "A"},
		Step{Version: 3, Name: "c", SQL: "C"},
	)
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}

	exec := &recordingExecer{failOn: "B"}
	err = plan.Create(context.Background(), exec, 3)
	if !errors.Is(err, errExec) {
		t.Fatalf("Create() error = %v, want %v", err, errExec)
	}
	if len(exec.queries) != 1 || exec.queries[0] != "A" {
		t.Errorf("executed %v, want [A]", exec.queries)
	}
}
