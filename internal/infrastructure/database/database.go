package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Database configuration constants.
const (
	// dirPermissions is the permission mode for the database directory.
	dirPermissions = 0750

	// filePermissions is the permission mode for the database file.
	filePermissions = 0600
)

// ErrClosed is returned by operations on a DB after Close.
var ErrClosed = errors.New("database: handle is closed")

// Mode selects how the engine opens the database file.
type Mode int

const (
	// ModeReadWriteCreate opens read/write and creates the file if missing.
	ModeReadWriteCreate Mode = iota

	// ModeReadWrite opens read/write and fails if the file is missing.
	ModeReadWrite

	// ModeReadOnly opens an existing file read-only.
	ModeReadOnly

	// ModeMemory opens a private in-memory database. Path is used as its name.
	ModeMemory
)

// String returns the SQLite URI spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeReadWrite:
		return "rw"
	case ModeReadOnly:
		return "ro"
	case ModeMemory:
		return "memory"
	default:
		return "rwc"
	}
}

// Config describes a single native open.
type Config struct {
	// Path is the filesystem path of the database file, or the name of an
	// in-memory database when Mode is ModeMemory.
	Path string

	// Mode is the open mode. It only reaches the engine when URI is set;
	// a plain filename always opens read/write/create.
	Mode Mode

	// URI enables the declarative form: a file: URI carrying the mode and
	// the tuning parameters below. When false the engine receives the bare
	// path and every tuning value must be applied after open.
	URI bool

	// BusyTimeout is how long the engine waits on a locked database.
	BusyTimeout time.Duration

	// JournalMode is applied at connect time when non-empty (URI only).
	JournalMode string

	// Synchronous is applied at connect time when non-empty (URI only).
	Synchronous string
}

// DB owns one native SQLite connection.
//
// The pool is capped at a single connection that is never recycled, and
// that connection is pinned for the lifetime of the DB so per-connection
// state (synchronous mode, in-memory contents) survives between calls.
//
// Thread Safety:
//   - Not safe for concurrent mutation; callers serialise access.
type DB struct {
	sqlDB  *sql.DB
	conn   *sql.Conn
	path   string
	closed bool
}

// Open opens the database described by cfg.
//
// It performs the following setup:
//  1. Creates the database directory (ModeReadWriteCreate only)
//  2. Opens the pool and pins its single connection, surfacing native open errors
//  3. Sets file permissions (0600) on a newly created file
//
// Parameters:
//   - ctx: Context for the native open
//   - cfg: Database configuration
//
// Returns:
//   - *DB: Connected database handle
//   - error: If the native open fails
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("database: path is required")
	}

	created := false
	if cfg.Mode == ModeReadWriteCreate {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
			created = true
		}
	}

	sqlDB, err := sql.Open(DriverName, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection, never recycled.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()  //nolint:errcheck // Best effort cleanup on error path
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	if created {
		// The engine may defer creating the file until the first write.
		_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // File may not exist yet
	}

	return &DB{
		sqlDB: sqlDB,
		conn:  conn,
		path:  cfg.Path,
	}, nil
}

// Close releases the pinned connection and the pool. Closing twice is a no-op.
func (db *DB) Close() error {
	if db.closed || db.sqlDB == nil {
		return nil
	}
	db.closed = true
	errs := []error{db.conn.Close(), db.sqlDB.Close()}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the path (or in-memory name) the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// HealthCheck verifies the database is accessible and functioning.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.closed {
		return ErrClosed
	}
	var result int
	if err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// ExecContext executes a statement that doesn't return rows on the pinned connection.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if db.closed {
		return nil, ErrClosed
	}
	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return result, nil
}

// QueryContext executes a query that returns rows on the pinned connection.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if db.closed {
		return nil, ErrClosed
	}
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	return rows, nil
}

// QueryRowContext executes a query that returns at most one row.
// On a closed DB the returned row reports the pool's closed error from Scan.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if db.closed {
		return db.sqlDB.QueryRowContext(ctx, query, args...)
	}
	return db.conn.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction on the pinned connection.
//
// Example:
//
//	tx, err := db.BeginTx(ctx, nil)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback() // No-op if committed
//
//	// ... execute queries on tx ...
//
//	return tx.Commit()
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if db.closed {
		return nil, ErrClosed
	}
	tx, err := db.conn.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}
