// Package database is the native handle layer for the SQLite driver.
//
// This package manages:
//   - Rendering an open request as an engine-specific connection string
//   - Opening a single-connection pool and pinning that connection
//   - Reporting the SQLite library version linked into the binary
//
// It knows nothing about schema versions or capability tiers; those
// decisions are made by internal/driver, which asks this package for one
// native open per strategy branch.
//
// Engines:
//
// Exactly one engine is compiled in, selected by build tag:
//   - default: github.com/mattn/go-sqlite3 (CGO)
//   - -tags modernc: modernc.org/sqlite (pure Go)
//   - -tags ncruces: github.com/ncruces/go-sqlite3 (WebAssembly)
//
// Security Considerations:
//   - Newly created database files get 0600 permissions
//   - Directories are only created for read/write/create opens
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        "/var/lib/app/app.db",
//	    Mode:        database.ModeReadWriteCreate,
//	    URI:         true,
//	    BusyTimeout: 5 * time.Second,
//	    JournalMode: "WAL",
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
package database
