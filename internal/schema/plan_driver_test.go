package schema_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/nerrad567/gray-logic-sqlite/internal/driver"
	"github.com/nerrad567/gray-logic-sqlite/internal/schema"
)

func TestPlan_DrivesLifecycle(t *testing.T) {
	plan, err := schema.Load(fstest.MapFS{
		"0001_notes.up.sql": {Data: []byte(`
			CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);
			CREATE INDEX idx_notes_body ON notes(body);`)},
		"0002_pinned.up.sql": {Data: []byte("ALTER TABLE notes ADD COLUMN pinned INTEGER NOT NULL DEFAULT 0;")},
	}, ".")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir, err := driver.FromDir(t.TempDir())
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}
	ctx := context.Background()
	probe := driver.WithProbe(driver.StaticProbe(driver.TierTuning))

	cfg := func(version int) driver.Configuration {
		return driver.Configuration{
			Path:    dir,
			Name:    "notes.db",
			Version: version,
			OnCreate: func(ctx context.Context, conn *driver.Connection) error {
				return plan.Create(ctx, conn, version)
			},
			OnUpgrade: func(ctx context.Context, conn *driver.Connection, oldVersion, newVersion int) error {
				return plan.Upgrade(ctx, conn, oldVersion, newVersion)
			},
		}
	}

	conn, err := driver.Open(ctx, cfg(1), probe)
	if err != nil {
		t.Fatalf("Open(v1) error = %v", err)
	}
	if _, err := conn.ExecContext(ctx, "INSERT INTO notes (body) VALUES ('first')"); err != nil {
		t.Fatalf("INSERT at v1 error = %v", err)
	}
	conn.Close() //nolint:errcheck // Test cleanup

	conn, err = driver.Open(ctx, cfg(2), probe)
	if err != nil {
		t.Fatalf("Open(v2) error = %v", err)
	}
	defer conn.Close() //nolint:errcheck // Test cleanup

	var pinned int
	if err := conn.QueryRowContext(ctx, "SELECT pinned FROM notes WHERE body = 'first'").Scan(&pinned); err != nil {
		t.Fatalf("SELECT after upgrade error = %v", err)
	}
	if pinned != 0 {
		t.Errorf("pinned = %d, want default 0", pinned)
	}
}
