//go:build modernc

/*
This file handles the [modernc.org/sqlite] engine.

modernc is a transpilation of the SQLite C sources to Go and does not need
CGO, which makes cross-compiled builds easier. Build with -tags modernc.
*/

package database

import (
	"context"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// Library identifies the engine in logs and CLI output.
	Library = "modernc.org/sqlite"

	// DriverName is the database/sql driver name registered by the engine.
	DriverName = "sqlite"
)

// buildDSN renders cfg for modernc.org/sqlite.
// Pragmas use the syntax: file:path?_pragma=name(value)&_pragma=name2(value2)
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
