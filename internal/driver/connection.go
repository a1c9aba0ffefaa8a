package driver

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
)

// executor is the statement surface shared by the pinned connection and
// the lifecycle transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Connection is an open database returned by Open.
//
// It owns the native handle until Close. While OnCreate, OnUpgrade or
// OnDowngrade run, every statement issued through the Connection joins the
// lifecycle transaction that also records the new schema version.
//
// Thread Safety:
//   - Not safe for concurrent use; callers serialise access.
type Connection struct {
	db       *database.DB
	tx       *sql.Tx
	readOnly bool
	inMemory bool
	strategy Strategy
	params   OpenParams
	logger   *logging.Logger
}

// newConnection wraps an opened native handle.
func newConnection(db *database.DB, strategy Strategy, params OpenParams, readOnly bool, logger *logging.Logger) *Connection {
	return &Connection{
		db:       db,
		readOnly: readOnly,
		inMemory: strategy == StrategyInMemory,
		strategy: strategy,
		params:   params,
		logger:   logger,
	}
}

// ReadOnly reports whether the engine opened the database read-only.
func (c *Connection) ReadOnly() bool {
	return c.readOnly
}

// InMemory reports whether the database has no backing file.
func (c *Connection) InMemory() bool {
	return c.inMemory
}

// Strategy returns the strategy that produced the connection.
func (c *Connection) Strategy() Strategy {
	return c.strategy
}

// Params returns the parameters handed to the engine at open time.
func (c *Connection) Params() OpenParams {
	return c.params
}

// Path returns the database file, or the in-memory database name.
func (c *Connection) Path() string {
	return c.db.Path()
}

func (c *Connection) exec() executor {
	if c.tx != nil {
		return c.tx
	}
	return c.db
}

// Version returns the persisted schema version (PRAGMA user_version).
func (c *Connection) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.exec().QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// setVersion records v as the schema version.
func (c *Connection) setVersion(ctx context.Context, v int) error {
	// PRAGMA arguments cannot be bound.
	if _, err := c.exec().ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}
	return nil
}

// JournalMode returns the effective journal mode.
func (c *Connection) JournalMode(ctx context.Context) (JournalMode, error) {
	var mode string
	if err := c.exec().QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		return "", fmt.Errorf("reading journal mode: %w", err)
	}
	return JournalMode(strings.ToUpper(mode)), nil
}

// SynchronousMode returns the effective synchronous mode.
func (c *Connection) SynchronousMode(ctx context.Context) (SynchronousMode, error) {
	var level int
	if err := c.exec().QueryRowContext(ctx, "PRAGMA synchronous").Scan(&level); err != nil {
		return "", fmt.Errorf("reading synchronous mode: %w", err)
	}
	if level < 0 || level >= len(synchronousLevels) {
		return "", fmt.Errorf("reading synchronous mode: unexpected level %d", level)
	}
	return synchronousLevels[level], nil
}

// UpdateJournalMode switches the journal mode. It is a no-op on a
// read-only connection. In-memory databases only keep MEMORY or OFF, so
// the engine's answer is not checked for them.
func (c *Connection) UpdateJournalMode(ctx context.Context, mode JournalMode) error {
	if c.readOnly {
		return nil
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown journal mode %q", ErrInvalidConfig, mode)
	}

	var got string
	if err := c.exec().QueryRowContext(ctx, "PRAGMA journal_mode = "+string(mode)).Scan(&got); err != nil {
		return fmt.Errorf("setting journal mode: %w", err)
	}
	if !c.inMemory && !strings.EqualFold(got, string(mode)) {
		return fmt.Errorf("%w: journal mode %s, engine kept %s", ErrTuningRejected, mode, strings.ToUpper(got))
	}

	c.logger.Debug("journal mode updated", "path", c.Path(), "journal_mode", string(mode))
	return nil
}

// UpdateSynchronousMode switches the synchronous mode. It is a no-op on a
// read-only connection.
func (c *Connection) UpdateSynchronousMode(ctx context.Context, mode SynchronousMode) error {
	if c.readOnly {
		return nil
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown synchronous mode %q", ErrInvalidConfig, mode)
	}

	if _, err := c.exec().ExecContext(ctx, "PRAGMA synchronous = "+string(mode)); err != nil {
		return fmt.Errorf("setting synchronous mode: %w", err)
	}

	c.logger.Debug("synchronous mode updated", "path", c.Path(), "synchronous_mode", string(mode))
	return nil
}

// setBusyTimeout applies the busy timeout after a legacy open.
func (c *Connection) setBusyTimeout(ctx context.Context, ms int64) error {
	if _, err := c.exec().ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", ms)); err != nil {
		return fmt.Errorf("setting busy timeout: %w", err)
	}
	return nil
}

// ExecContext executes a statement that doesn't return rows.
func (c *Connection) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.exec().ExecContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (c *Connection) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.exec().QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query that returns at most one row.
func (c *Connection) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.exec().QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction. It fails with ErrTxInProgress inside
// lifecycle callbacks, which already run in one.
func (c *Connection) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if c.tx != nil {
		return nil, ErrTxInProgress
	}
	return c.db.BeginTx(ctx, opts)
}

// HealthCheck verifies the database is accessible.
func (c *Connection) HealthCheck(ctx context.Context) error {
	return c.db.HealthCheck(ctx)
}

// Close releases the native handle. Closing twice is a no-op.
func (c *Connection) Close() error {
	return c.db.Close()
}
