//go:build ncruces && !modernc

// ncruces runs SQLite compiled to WebAssembly on wazero.
// Build with -tags ncruces.

package database

import (
	"context"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver
	_ "github.com/ncruces/go-sqlite3/embed"  // Embedded SQLite build
)

const (
	// Library identifies the engine in logs and CLI output.
	Library = "github.com/ncruces/go-sqlite3"

	// DriverName is the database/sql driver name registered by the engine.
	DriverName = "sqlite3"
)

// buildDSN renders cfg for ncruces/go-sqlite3, which accepts the same
// _pragma=name(value) parameters as modernc.
func buildDSN(cfg Config) string {
	if !cfg.URI {
		return cfg.Path
	}
	params := append([]string{"mode=" + cfg.Mode.String()}, pragmaParams(cfg)...)
	return uriPath(cfg) + "?" + strings.Join(params, "&")
}

// LibVersion reports the SQLite library compiled into the engine.
func LibVersion(ctx context.Context) (Version, error) {
	return queryLibVersion(ctx)
}
