package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// JournalMode is the engine's rollback/write-ahead journal strategy.
type JournalMode string

const (
	JournalDelete   JournalMode = "DELETE"
	JournalTruncate JournalMode = "TRUNCATE"
	JournalPersist  JournalMode = "PERSIST"
	JournalMemory   JournalMode = "MEMORY"
	JournalWAL      JournalMode = "WAL"
	JournalOff      JournalMode = "OFF"
)

// Valid reports whether m is a known journal mode.
func (m JournalMode) Valid() bool {
	switch m {
	case JournalDelete, JournalTruncate, JournalPersist, JournalMemory, JournalWAL, JournalOff:
		return true
	}
	return false
}

// ParseJournalMode converts a case-insensitive name into a JournalMode.
func ParseJournalMode(s string) (JournalMode, error) {
	m := JournalMode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown journal mode %q", ErrInvalidConfig, s)
	}
	return m, nil
}

// SynchronousMode is how aggressively the engine flushes to disk.
type SynchronousMode string

const (
	SynchronousOff    SynchronousMode = "OFF"
	SynchronousNormal SynchronousMode = "NORMAL"
	SynchronousFull   SynchronousMode = "FULL"
	SynchronousExtra  SynchronousMode = "EXTRA"
)

// synchronousLevels is the order PRAGMA synchronous reports modes in.
var synchronousLevels = []SynchronousMode{SynchronousOff, SynchronousNormal, SynchronousFull, SynchronousExtra}

// Valid reports whether m is a known synchronous mode.
func (m SynchronousMode) Valid() bool {
	switch m {
	case SynchronousOff, SynchronousNormal, SynchronousFull, SynchronousExtra:
		return true
	}
	return false
}

// ParseSynchronousMode converts a case-insensitive name into a SynchronousMode.
func ParseSynchronousMode(s string) (SynchronousMode, error) {
	m := SynchronousMode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown synchronous mode %q", ErrInvalidConfig, s)
	}
	return m, nil
}

// Lookaside sizes the engine's small-allocation pool. The zero value keeps
// the engine default.
type Lookaside struct {
	SlotSize  int
	SlotCount int
}

// IsZero reports whether the engine default is requested.
func (l Lookaside) IsZero() bool {
	return l.SlotSize == 0 && l.SlotCount == 0
}

// Default tuning applied by Open when a Configuration leaves it unset.
const (
	DefaultJournalMode     = JournalWAL
	DefaultSynchronousMode = SynchronousNormal
	DefaultBusyTimeout     = 5 * time.Second
)

// memoryName is used for in-memory databases configured without a name.
const memoryName = "memory"

// Configuration describes the database a caller wants.
//
// It is a plain value: build it once, pass it to Open, and do not change
// it afterwards. The callbacks run synchronously inside Open with the
// Connection about to be returned, before any other code can see it.
type Configuration struct {
	// Path is the directory holding the database, from FromDir or WorkingDir.
	Path DatabasePath

	// Name is the database file name inside Path.
	Name string

	// Version is the schema version the caller expects. Must be >= 1.
	Version int

	// ReadOnly requests a strictly read-only connection. When the strict
	// open fails the ordinary readable path is used instead.
	ReadOnly bool

	// InMemory requests a database with no backing file. It takes
	// precedence over Path and Name on tiers that support it.
	InMemory bool

	JournalMode     JournalMode
	SynchronousMode SynchronousMode
	BusyTimeout     time.Duration
	Lookaside       Lookaside

	// OnCreate runs once when a database without a schema version is opened.
	OnCreate func(ctx context.Context, conn *Connection) error

	// OnUpgrade runs once when the persisted version is below Version.
	OnUpgrade func(ctx context.Context, conn *Connection, oldVersion, newVersion int) error

	// OnDowngrade runs once when the persisted version is above Version.
	// When nil such an open fails with ErrDowngrade.
	OnDowngrade func(ctx context.Context, conn *Connection, oldVersion, newVersion int) error
}

// withDefaults fills unset tuning values.
func (c Configuration) withDefaults() Configuration {
	if c.JournalMode == "" {
		c.JournalMode = DefaultJournalMode
	}
	if c.SynchronousMode == "" {
		c.SynchronousMode = DefaultSynchronousMode
	}
	if c.BusyTimeout == 0 {
		c.BusyTimeout = DefaultBusyTimeout
	}
	if c.Name == "" && c.InMemory {
		c.Name = memoryName
	}
	return c
}

// Validate checks the configuration. Path is checked at open time, since
// an in-memory open never needs it.
func (c Configuration) Validate() error {
	var errs []error

	if c.Version < 1 {
		errs = append(errs, fmt.Errorf("version must be at least 1, got %d", c.Version))
	}
	if c.Name == "" && !c.InMemory {
		errs = append(errs, errors.New("name is required"))
	}
	if c.JournalMode != "" && !c.JournalMode.Valid() {
		errs = append(errs, fmt.Errorf("unknown journal mode %q", c.JournalMode))
	}
	if c.SynchronousMode != "" && !c.SynchronousMode.Valid() {
		errs = append(errs, fmt.Errorf("unknown synchronous mode %q", c.SynchronousMode))
	}
	if c.BusyTimeout < 0 {
		errs = append(errs, errors.New("busy timeout must not be negative"))
	}
	if c.Lookaside.SlotSize < 0 || c.Lookaside.SlotCount < 0 {
		errs = append(errs, errors.New("lookaside values must not be negative"))
	} else if (c.Lookaside.SlotSize == 0) != (c.Lookaside.SlotCount == 0) {
		errs = append(errs, errors.New("lookaside slot size and count must be set together"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
