package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
)

// Tier is what the running SQLite library supports. Tiers are ordered:
// a higher tier has every capability of the lower ones.
type Tier int

const (
	// TierLegacy opens plain filenames and tunes everything after open.
	TierLegacy Tier = iota

	// TierOpenParams accepts declarative open parameters (file: URIs with
	// mode=ro/rw/rwc and a busy timeout).
	TierOpenParams

	// TierTuning additionally accepts declarative journal and synchronous
	// modes and mode=memory.
	TierTuning
)

// Minimum SQLITE_VERSION_NUMBER for each tier.
const (
	// openParamsMinVersion is the first release with URI filenames (3.7.7).
	openParamsMinVersion = 3_007_007

	// tuningMinVersion is the first release with mode=memory URIs (3.8.0).
	tuningMinVersion = 3_008_000
)

// String returns the configuration spelling of the tier.
func (t Tier) String() string {
	switch t {
	case TierLegacy:
		return "legacy"
	case TierOpenParams:
		return "open_params"
	case TierTuning:
		return "tuning"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier converts a configuration string into a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy":
		return TierLegacy, nil
	case "open_params":
		return TierOpenParams, nil
	case "tuning":
		return TierTuning, nil
	default:
		return TierLegacy, fmt.Errorf("%w: unknown tier %q", ErrInvalidConfig, s)
	}
}

// TierForVersion maps a SQLITE_VERSION_NUMBER to its tier.
func TierForVersion(number int) Tier {
	switch {
	case number >= tuningMinVersion:
		return TierTuning
	case number >= openParamsMinVersion:
		return TierOpenParams
	default:
		return TierLegacy
	}
}

// Probe reports the capability tier of the running environment.
// Implementations must not fail; when unsure they report TierLegacy.
type Probe interface {
	Tier(ctx context.Context) Tier
}

// StaticProbe always reports the same tier. It pins a compatibility path.
type StaticProbe Tier

// Tier implements Probe.
func (p StaticProbe) Tier(context.Context) Tier {
	return Tier(p)
}

// EngineProbe derives the tier from the SQLite library linked into the binary.
type EngineProbe struct {
	logger *logging.Logger
}

// NewEngineProbe creates a probe for the compiled-in engine.
func NewEngineProbe(logger *logging.Logger) *EngineProbe {
	if logger == nil {
		logger = logging.Nop()
	}
	return &EngineProbe{logger: logger}
}

// Tier implements Probe. A failed version query yields TierLegacy.
func (p *EngineProbe) Tier(ctx context.Context) Tier {
	v, err := database.LibVersion(ctx)
	if err != nil {
		p.logger.Warn("sqlite version probe failed, assuming legacy tier",
			"library", database.Library,
			"error", err,
		)
		return TierLegacy
	}
	tier := TierForVersion(v.Number)
	p.logger.Debug("sqlite capability probed",
		"library", database.Library,
		"sqlite_version", v.Text,
		"tier", tier.String(),
	)
	return tier
}
