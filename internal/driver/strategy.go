package driver

// Strategy is one way of turning a Configuration into a Connection.
type Strategy int

const (
	// StrategyInMemory opens a mode=memory database with declarative tuning.
	StrategyInMemory Strategy = iota

	// StrategyStrictReadOnly opens the existing file with mode=ro and falls
	// back to the helper's readable path when that fails.
	StrategyStrictReadOnly

	// StrategyHelper opens through the helper with declarative open parameters.
	StrategyHelper

	// StrategyLegacyHelper opens a plain filename through the helper and
	// leaves every tuning value to be applied after open. Read-only
	// requests take the strict read-only path with its fallback.
	StrategyLegacyHelper
)

// String returns a short name for logs and CLI output.
func (s Strategy) String() string {
	switch s {
	case StrategyInMemory:
		return "in_memory"
	case StrategyStrictReadOnly:
		return "strict_read_only"
	case StrategyHelper:
		return "helper"
	case StrategyLegacyHelper:
		return "legacy_helper"
	default:
		return "unknown"
	}
}

// Select picks the strategy for cfg on tier. Every input maps to exactly
// one strategy:
//
//	tier >= tuning      && in-memory  -> StrategyInMemory
//	tier >= open_params && read-only  -> StrategyStrictReadOnly
//	tier >= open_params               -> StrategyHelper
//	otherwise                         -> StrategyLegacyHelper
func Select(cfg Configuration, tier Tier) Strategy {
	switch {
	case tier >= TierTuning && cfg.InMemory:
		return StrategyInMemory
	case tier >= TierOpenParams && cfg.ReadOnly:
		return StrategyStrictReadOnly
	case tier >= TierOpenParams:
		return StrategyHelper
	default:
		return StrategyLegacyHelper
	}
}
