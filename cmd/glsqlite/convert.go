package main

import (
	"context"
	"os"
	"strings"

	"github.com/nerrad567/gray-logic-sqlite/internal/driver"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-sqlite/internal/schema"
	"github.com/nerrad567/gray-logic-sqlite/migrations"
)

// driverConfig converts the file configuration into a driver.Configuration
// whose lifecycle callbacks apply plan.
func driverConfig(c *config.Config, plan *schema.Plan) (driver.Configuration, error) {
	db := c.Database

	journal, err := driver.ParseJournalMode(db.JournalMode)
	if err != nil {
		return driver.Configuration{}, err
	}
	sync, err := driver.ParseSynchronousMode(db.SynchronousMode)
	if err != nil {
		return driver.Configuration{}, err
	}

	cfg := driver.Configuration{
		Name:            db.Name,
		Version:         db.Version,
		ReadOnly:        db.ReadOnly,
		InMemory:        db.InMemory,
		JournalMode:     journal,
		SynchronousMode: sync,
		BusyTimeout:     c.GetBusyTimeout(),
		Lookaside: driver.Lookaside{
			SlotSize:  db.Lookaside.SlotSize,
			SlotCount: db.Lookaside.SlotCount,
		},
		OnCreate: func(ctx context.Context, conn *driver.Connection) error {
			return plan.Create(ctx, conn, db.Version)
		},
		OnUpgrade: func(ctx context.Context, conn *driver.Connection, oldVersion, newVersion int) error {
			return plan.Upgrade(ctx, conn, oldVersion, newVersion)
		},
	}
	if db.Dir != "" {
		cfg.Path, err = driver.FromDir(db.Dir)
		if err != nil {
			return driver.Configuration{}, err
		}
	}
	return cfg, nil
}

// probeFor returns the probe the configured tier asks for.
func probeFor(tier string, log *logging.Logger) (driver.Probe, error) {
	if strings.EqualFold(tier, "auto") || tier == "" {
		return driver.NewEngineProbe(log), nil
	}
	t, err := driver.ParseTier(tier)
	if err != nil {
		return nil, err
	}
	return driver.StaticProbe(t), nil
}

// loadPlan reads the schema plan from dir, or the embedded default plan
// when dir is empty.
func loadPlan(dir string) (*schema.Plan, error) {
	if dir == "" {
		return migrations.Plan()
	}
	return schema.Load(os.DirFS(dir), ".")
}
