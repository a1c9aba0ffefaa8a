package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
)

// openHelper binds a file, a schema version and open parameters, and
// hands out connections whose schema is current.
//
// It owns the lifecycle contract: a database without a schema version gets
// OnCreate, an older one OnUpgrade, a newer one OnDowngrade, each exactly
// once and inside the same transaction that records the new version.
type openHelper struct {
	cfg      Configuration
	file     string
	params   OpenParams
	strategy Strategy
	logger   *logging.Logger
}

// open performs one native open of the helper's file in mode.
func (h *openHelper) open(ctx context.Context, mode database.Mode) (*Connection, error) {
	db, err := database.Open(ctx, h.params.native(h.file, mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %w", ErrOpenFailure, h.file, mode, err)
	}
	return newConnection(db, h.strategy, h.params, mode == database.ModeReadOnly, h.logger), nil
}

// writable opens the database read/write, creating it if needed, and
// brings its schema to the configured version.
func (h *openHelper) writable(ctx context.Context) (*Connection, error) {
	conn, err := h.open(ctx, h.writableMode())
	if err != nil {
		return nil, err
	}

	if !h.params.Declarative {
		if err := conn.setBusyTimeout(ctx, h.params.BusyTimeout.Milliseconds()); err != nil {
			conn.Close() //nolint:errcheck // Best effort cleanup on error path
			return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailure, h.file, err)
		}
	}

	if err := runLifecycle(ctx, conn, h.cfg, h.logger); err != nil {
		conn.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, err
	}
	return conn, nil
}

// writableMode opens an existing file with mode=rw, so a file removed
// between the check and the open is not recreated empty. A plain filename
// on the legacy tier can only mean read/write/create.
func (h *openHelper) writableMode() database.Mode {
	if !h.params.Declarative {
		return database.ModeReadWriteCreate
	}
	if _, err := os.Stat(h.file); err == nil {
		return database.ModeReadWrite
	}
	return database.ModeReadWriteCreate
}

// readable returns a writable connection when possible. If the writable
// open fails and the file exists it opens read-only instead, which only
// succeeds when no schema change is needed.
func (h *openHelper) readable(ctx context.Context) (*Connection, error) {
	conn, err := h.writable(ctx)
	if err == nil {
		return conn, nil
	}
	// Callback and schema errors are the caller's, not the engine's.
	if !errors.Is(err, ErrOpenFailure) {
		return nil, err
	}
	if _, statErr := os.Stat(h.file); statErr != nil {
		return nil, err
	}

	h.logger.Warn("writable open failed, opening read-only",
		"path", h.file,
		"error", err,
	)

	conn, roErr := h.open(ctx, database.ModeReadOnly)
	if roErr != nil {
		return nil, errors.Join(err, roErr)
	}
	version, verr := conn.Version(ctx)
	if verr != nil {
		conn.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailure, h.file, verr)
	}
	if version != h.cfg.Version {
		conn.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("%w: %s is at version %d, want %d", ErrReadOnlyVersion, h.file, version, h.cfg.Version)
	}
	return conn, nil
}

// runLifecycle runs the lifecycle callback the persisted version calls for.
// Callback errors are returned unmodified after the transaction is rolled back.
func runLifecycle(ctx context.Context, conn *Connection, cfg Configuration, logger *logging.Logger) error {
	current, err := conn.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenFailure, conn.Path(), err)
	}
	if current == cfg.Version {
		return nil
	}
	if current > cfg.Version && cfg.OnDowngrade == nil {
		return fmt.Errorf("%w: %s from version %d to %d", ErrDowngrade, conn.Path(), current, cfg.Version)
	}

	tx, err := conn.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenFailure, conn.Path(), err)
	}
	conn.tx = tx
	defer func() { conn.tx = nil }()

	switch {
	case current == 0:
		logger.Debug("creating database schema", "path", conn.Path(), "version", cfg.Version)
		if cfg.OnCreate != nil {
			err = cfg.OnCreate(ctx, conn)
		}
	case current < cfg.Version:
		logger.Debug("upgrading database schema", "path", conn.Path(), "from", current, "to", cfg.Version)
		if cfg.OnUpgrade != nil {
			err = cfg.OnUpgrade(ctx, conn, current, cfg.Version)
		}
	default:
		logger.Debug("downgrading database schema", "path", conn.Path(), "from", current, "to", cfg.Version)
		err = cfg.OnDowngrade(ctx, conn, current, cfg.Version)
	}
	if err != nil {
		tx.Rollback() //nolint:errcheck // The callback error is what matters
		return err
	}

	if err := conn.setVersion(ctx, cfg.Version); err != nil {
		tx.Rollback() //nolint:errcheck // Best effort cleanup on error path
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema version: %w", err)
	}
	return nil
}
