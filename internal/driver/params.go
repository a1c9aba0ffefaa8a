package driver

import (
	"time"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
)

// OpenParams are the values handed to the engine at open time. Which
// fields are populated depends on the tier the open ran on.
type OpenParams struct {
	// Declarative is false on the legacy tier: the engine receives a plain
	// filename and nothing else.
	Declarative bool

	ReadOnly    bool
	BusyTimeout time.Duration
	Lookaside   Lookaside

	// JournalMode and SynchronousMode are empty below TierTuning; the
	// caller-facing entry point applies them after open instead.
	JournalMode     JournalMode
	SynchronousMode SynchronousMode
}

// newOpenParams derives the open parameters for cfg on tier.
func newOpenParams(cfg Configuration, tier Tier) OpenParams {
	if tier < TierOpenParams {
		return OpenParams{ReadOnly: cfg.ReadOnly, BusyTimeout: cfg.BusyTimeout}
	}
	p := OpenParams{
		Declarative: true,
		ReadOnly:    cfg.ReadOnly,
		BusyTimeout: cfg.BusyTimeout,
		Lookaside:   cfg.Lookaside,
	}
	if tier >= TierTuning {
		p.JournalMode = cfg.JournalMode
		p.SynchronousMode = cfg.SynchronousMode
	}
	return p
}

// native renders the parameters as a single engine open of path in mode.
// Read-only opens carry no tuning: they cannot change the journal.
//
// A legacy read/write/create open is a plain filename. Any other mode needs
// a URI even on the legacy tier, since that is the only way to ask the
// engine for anything but read/write/create.
func (p OpenParams) native(path string, mode database.Mode) database.Config {
	cfg := database.Config{
		Path:        path,
		Mode:        mode,
		URI:         p.Declarative || mode != database.ModeReadWriteCreate,
		BusyTimeout: p.BusyTimeout,
	}
	if mode != database.ModeReadOnly {
		cfg.JournalMode = string(p.JournalMode)
		cfg.Synchronous = string(p.SynchronousMode)
	}
	return cfg
}
