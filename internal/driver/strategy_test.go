package driver

import "testing"

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
		inMemory bool
		tier     Tier
		want     Strategy
	}{
		{name: "memory on tuning", inMemory: true, tier: TierTuning, want: StrategyInMemory},
		{name: "memory and read-only on tuning", inMemory: true, readOnly: true, tier: TierTuning, want: StrategyInMemory},
		{name: "memory on open params", inMemory: true, tier: TierOpenParams, want: StrategyHelper},
		{name: "memory read-only on open params", inMemory: true, readOnly: true, tier: TierOpenParams, want: StrategyStrictReadOnly},
		{name: "memory on legacy", inMemory: true, tier: TierLegacy, want: StrategyLegacyHelper},
		{name: "read-only on tuning", readOnly: true, tier: TierTuning, want: StrategyStrictReadOnly},
		{name: "read-only on open params", readOnly: true, tier: TierOpenParams, want: StrategyStrictReadOnly},
		{name: "read-only on legacy", readOnly: true, tier: TierLegacy, want: StrategyLegacyHelper},
		{name: "writable on tuning", tier: TierTuning, want: StrategyHelper},
		{name: "writable on open params", tier: TierOpenParams, want: StrategyHelper},
		{name: "writable on legacy", tier: TierLegacy, want: StrategyLegacyHelper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Configuration{ReadOnly: tt.readOnly, InMemory: tt.inMemory}
			if got := Select(cfg, tt.tier); got != tt.want {
				t.Errorf("Select() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelect_Total(t *testing.T) {
	for _, tier := range allTiers {
		for _, readOnly := range []bool{false, true} {
			for _, inMemory := range []bool{false, true} {
				got := Select(Configuration{ReadOnly: readOnly, InMemory: inMemory}, tier)
				if got.String() == "unknown" {
					t.Errorf("Select(readOnly=%v, inMemory=%v, %s) produced no strategy", readOnly, inMemory, tier)
				}
			}
		}
	}
}

func TestNewOpenParams(t *testing.T) {
	cfg := Configuration{
		ReadOnly:        true,
		JournalMode:     JournalWAL,
		SynchronousMode: SynchronousFull,
		BusyTimeout:     DefaultBusyTimeout,
		Lookaside:       Lookaside{SlotSize: 128, SlotCount: 64},
	}

	legacy := newOpenParams(cfg, TierLegacy)
	if legacy.Declarative || legacy.JournalMode != "" || !legacy.Lookaside.IsZero() {
		t.Errorf("legacy params = %+v, want plain", legacy)
	}

	open := newOpenParams(cfg, TierOpenParams)
	if !open.Declarative || !open.ReadOnly || open.JournalMode != "" || open.SynchronousMode != "" {
		t.Errorf("open_params params = %+v, want declarative without tuning", open)
	}
	if open.Lookaside != cfg.Lookaside {
		t.Errorf("open_params Lookaside = %+v, want %+v", open.Lookaside, cfg.Lookaside)
	}

	tuning := newOpenParams(cfg, TierTuning)
	if tuning.JournalMode != JournalWAL || tuning.SynchronousMode != SynchronousFull {
		t.Errorf("tuning params = %+v, want journal and synchronous modes", tuning)
	}
}
