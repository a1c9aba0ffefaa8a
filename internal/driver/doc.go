// Package driver opens, tunes and deletes embedded SQLite databases.
//
// A caller describes the database it wants with a Configuration: where it
// lives, its schema version, whether it must be read-only or in memory,
// the journal and synchronous modes, and callbacks to create or upgrade
// the schema. Open turns that into a Connection.
//
// # Capability tiers
//
// What the engine can be told at open time depends on the SQLite library
// it links. A Probe reports one of three ordered tiers:
//
//	legacy       plain filenames only; everything is tuned after open
//	open_params  file: URIs with mode=ro/rw/rwc and a busy timeout
//	tuning       also journal and synchronous modes and mode=memory
//
// Select maps a Configuration and a tier to exactly one Strategy.
//
// # Schema lifecycle
//
// The schema version is PRAGMA user_version. A database at version 0 gets
// OnCreate; one below Configuration.Version gets OnUpgrade(old, new); one
// above gets OnDowngrade or fails with ErrDowngrade. The callback and the
// version write share one transaction, and all of it happens before Open
// returns.
//
// # Read-only fallback
//
// A strict read-only open that fails for any reason (missing file, lock,
// schema mismatch, corruption) falls back to the readable path, which may
// hand back a writable connection. Check Connection.ReadOnly when it
// matters.
//
// Usage:
//
//	dir, err := driver.FromDir("/var/lib/app")
//	if err != nil {
//	    return err
//	}
//	conn, err := driver.Open(ctx, driver.Configuration{
//	    Path:    dir,
//	    Name:    "app.db",
//	    Version: 2,
//	    OnCreate: func(ctx context.Context, c *driver.Connection) error {
//	        _, err := c.ExecContext(ctx, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)")
//	        return err
//	    },
//	    OnUpgrade: func(ctx context.Context, c *driver.Connection, from, to int) error {
//	        _, err := c.ExecContext(ctx, "ALTER TABLE notes ADD COLUMN created_at TEXT")
//	        return err
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
package driver
