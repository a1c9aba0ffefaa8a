package driver

import (
	"errors"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
)

// Domain-specific errors for opening and deleting databases.
// Use errors.Is() to check for these errors in calling code.
//
// Errors returned by OnCreate, OnUpgrade and OnDowngrade are not listed
// here: Open returns them exactly as the callback did.
var (
	// ErrInvalidPath is returned when a DatabasePath was not obtained from
	// FromDir or WorkingDir.
	ErrInvalidPath = errors.New("driver: invalid database path (obtain one from FromDir or WorkingDir)")

	// ErrOpenFailure is returned when the engine could not open the
	// database and no fallback applies. It wraps the native error.
	ErrOpenFailure = errors.New("driver: open failed")

	// ErrInvalidConfig is returned when a Configuration fails validation.
	ErrInvalidConfig = errors.New("driver: invalid configuration")

	// ErrDowngrade is returned when the persisted schema version is newer
	// than the configured one and no OnDowngrade callback is set.
	ErrDowngrade = errors.New("driver: cannot downgrade database")

	// ErrReadOnlyVersion is returned when only a read-only connection could
	// be obtained but the schema needs to be created or upgraded.
	ErrReadOnlyVersion = errors.New("driver: read-only database needs create or upgrade")

	// ErrTuningRejected is returned when the engine reports a different
	// effective journal mode than the one requested.
	ErrTuningRejected = errors.New("driver: engine rejected tuning value")

	// ErrTxInProgress is returned by BeginTx while a transaction, including
	// the lifecycle transaction around OnCreate/OnUpgrade, is active.
	ErrTxInProgress = errors.New("driver: transaction already in progress")

	// ErrClosed is returned by operations on a closed Connection.
	ErrClosed = database.ErrClosed
)
