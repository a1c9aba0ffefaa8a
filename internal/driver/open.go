package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
)

// options holds the collaborators of Open and Delete.
type options struct {
	probe  Probe
	logger *logging.Logger
}

// Option customises Open and Delete.
type Option func(*options)

// WithProbe replaces the engine probe, for example with a StaticProbe to
// pin a compatibility path.
func WithProbe(p Probe) Option {
	return func(o *options) {
		o.probe = p
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", "driver")
	if o.probe == nil {
		o.probe = NewEngineProbe(o.logger)
	}
	return o
}

// Open turns cfg into a ready Connection.
//
// It performs the following steps:
//  1. Validates cfg and fills unset tuning values with defaults
//  2. Asks the probe for the capability tier
//  3. Selects and runs exactly one strategy (see Select)
//  4. On tiers without declarative tuning, applies the synchronous and
//     journal modes to a writable connection
//
// OnCreate, OnUpgrade and OnDowngrade run during step 3, before Open
// returns. Their errors are returned unmodified.
//
// Parameters:
//   - ctx: Context for the native open and the lifecycle callbacks
//   - cfg: The desired database
//   - opts: Probe and logger overrides
//
// Returns:
//   - *Connection: Open connection matching cfg
//   - error: ErrInvalidConfig, ErrInvalidPath, ErrOpenFailure, ErrDowngrade,
//     ErrReadOnlyVersion, ErrTuningRejected or a callback's own error
func Open(ctx context.Context, cfg Configuration, opts ...Option) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	o := buildOptions(opts)

	tier := o.probe.Tier(ctx)
	strategy := Select(cfg, tier)
	params := newOpenParams(cfg, tier)

	o.logger.Debug("opening database",
		"name", cfg.Name,
		"version", cfg.Version,
		"tier", tier.String(),
		"strategy", strategy.String(),
	)
	if !cfg.Lookaside.IsZero() {
		o.logger.Debug("lookaside sizing recorded but not applied by engine",
			"library", database.Library,
			"slot_size", cfg.Lookaside.SlotSize,
			"slot_count", cfg.Lookaside.SlotCount,
		)
	}

	var (
		conn *Connection
		err  error
	)
	if strategy == StrategyInMemory {
		conn, err = openInMemory(ctx, cfg, params, o.logger)
	} else {
		conn, err = openFile(ctx, cfg, strategy, params, o.logger)
	}
	if err != nil {
		return nil, err
	}

	if tier < TierTuning && !conn.ReadOnly() {
		if err := tune(ctx, conn, cfg); err != nil {
			conn.Close() //nolint:errcheck // Best effort cleanup on error path
			return nil, err
		}
	}

	o.logger.Debug("database opened",
		"path", conn.Path(),
		"strategy", strategy.String(),
		"read_only", conn.ReadOnly(),
	)
	return conn, nil
}

// tune applies the tuning a non-declarative tier could not pass at open.
func tune(ctx context.Context, conn *Connection, cfg Configuration) error {
	if err := conn.UpdateSynchronousMode(ctx, cfg.SynchronousMode); err != nil {
		return err
	}
	return conn.UpdateJournalMode(ctx, cfg.JournalMode)
}

// openInMemory opens a uniquely named mode=memory database and runs the
// lifecycle against it. It is always fresh, so OnCreate always runs.
func openInMemory(ctx context.Context, cfg Configuration, params OpenParams, logger *logging.Logger) (*Connection, error) {
	name := cfg.Name + "-" + uuid.NewString()
	db, err := database.Open(ctx, params.native(name, database.ModeMemory))
	if err != nil {
		return nil, fmt.Errorf("%w: in-memory %s: %w", ErrOpenFailure, name, err)
	}

	conn := newConnection(db, StrategyInMemory, params, false, logger)
	if err := runLifecycle(ctx, conn, cfg, logger); err != nil {
		conn.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, err
	}
	return conn, nil
}

// openFile runs one of the file-backed strategies.
func openFile(ctx context.Context, cfg Configuration, strategy Strategy, params OpenParams, logger *logging.Logger) (*Connection, error) {
	file, err := resolveFile(cfg.Path, cfg.Name)
	if err != nil {
		return nil, err
	}

	h := &openHelper{
		cfg:      cfg,
		file:     file,
		params:   params,
		strategy: strategy,
		logger:   logger,
	}

	switch strategy {
	case StrategyStrictReadOnly:
		return openStrictReadOnly(ctx, h)
	case StrategyLegacyHelper:
		// A read-only open still needs a URI here; params.native renders
		// mode=ro even without declarative tuning.
		if cfg.ReadOnly {
			return openStrictReadOnly(ctx, h)
		}
		return h.writable(ctx)
	default:
		return h.writable(ctx)
	}
}

// openStrictReadOnly opens the existing file with mode=ro. Any failure,
// including a schema that would need creating or upgrading, falls back to
// the helper's readable path instead of being returned.
func openStrictReadOnly(ctx context.Context, h *openHelper) (*Connection, error) {
	conn, err := h.open(ctx, database.ModeReadOnly)
	if err != nil {
		return fallBackToReadable(ctx, h, err)
	}

	version, err := conn.Version(ctx)
	if err != nil {
		conn.Close() //nolint:errcheck // Replaced by the fallback connection
		return fallBackToReadable(ctx, h, err)
	}
	if version != h.cfg.Version {
		conn.Close() //nolint:errcheck // Replaced by the fallback connection
		h.logger.Info("read-only database needs a schema change, reopening through readable path",
			"path", h.file,
			"version", version,
			"want", h.cfg.Version,
		)
		return h.readable(ctx)
	}
	return conn, nil
}

// fallBackToReadable logs a failed strict read-only open and runs the
// readable path. This hides real failures such as corruption.
func fallBackToReadable(ctx context.Context, h *openHelper, err error) (*Connection, error) {
	h.logger.Warn("strict read-only open failed, falling back to readable open",
		"path", h.file,
		"error", err,
	)
	return h.readable(ctx)
}
