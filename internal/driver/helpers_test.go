package driver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
)

// recorder counts lifecycle callback invocations.
type recorder struct {
	creates    int
	upgrades   [][2]int
	downgrades [][2]int
}

func (r *recorder) onCreate(ctx context.Context, conn *Connection) error {
	r.creates++
	_, err := conn.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS notes (id INTEGER PRIMARY KEY, body TEXT)")
	return err
}

func (r *recorder) onUpgrade(_ context.Context, _ *Connection, oldVersion, newVersion int) error {
	r.upgrades = append(r.upgrades, [2]int{oldVersion, newVersion})
	return nil
}

func (r *recorder) onDowngrade(_ context.Context, _ *Connection, oldVersion, newVersion int) error {
	r.downgrades = append(r.downgrades, [2]int{oldVersion, newVersion})
	return nil
}

// config returns a file-backed configuration wired to the recorder.
func (r *recorder) config(path DatabasePath, version int) Configuration {
	return Configuration{
		Path:        path,
		Name:        "app.db",
		Version:     version,
		JournalMode: JournalDelete,
		OnCreate:    r.onCreate,
		OnUpgrade:   r.onUpgrade,
	}
}

// tempPath returns a DatabasePath for a fresh temporary directory.
func tempPath(t *testing.T) DatabasePath {
	t.Helper()

	p, err := FromDir(t.TempDir())
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}
	return p
}

// mustOpen opens cfg on tier or fails the test.
func mustOpen(t *testing.T, cfg Configuration, tier Tier) *Connection {
	t.Helper()

	conn, err := Open(context.Background(), cfg, WithProbe(StaticProbe(tier)))
	if err != nil {
		t.Fatalf("Open() on %s error = %v", tier, err)
	}
	return conn
}

// seed creates the database at version on the tuning tier and closes it.
func seed(t *testing.T, path DatabasePath, version int) {
	t.Helper()

	r := &recorder{}
	conn := mustOpen(t, r.config(path, version), TierTuning)
	if err := conn.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

var allTiers = []Tier{TierLegacy, TierOpenParams, TierTuning}

// bufferLogger returns a debug-level text logger writing to w.
func bufferLogger(w io.Writer) *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}
