// mattn is the default engine when no engine build tag is provided.
// It requires CGO.

//go:build !modernc && !ncruces

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// Library identifies the engine in logs and CLI output.
	Library = "github.com/mattn/go-sqlite3"

	// DriverName is the database/sql driver name registered by the engine.
	DriverName = "sqlite3"
)

// buildDSN renders cfg for mattn/go-sqlite3.
// See: https://github.com/mattn/go-sqlite3#connection-string
func buildDSN(cfg Config) string {
	if !cfg.URI {
		return cfg.Path
	}

	params := []string{
		"mode=" + cfg.Mode.String(),
		fmt.Sprintf("_busy_timeout=%d", busyTimeoutMillis(cfg.BusyTimeout)),
	}
	if cfg.JournalMode != "" {
		params = append(params, "_journal_mode="+cfg.JournalMode)
	}
	if cfg.Synchronous != "" {
		params = append(params, "_synchronous="+cfg.Synchronous)
	}
	return uriPath(cfg) + "?" + strings.Join(params, "&")
}

// LibVersion reports the SQLite library linked into the binary.
func LibVersion(_ context.Context) (Version, error) {
	text, number, _ := sqlite3.Version()
	return Version{Text: text, Number: number}, nil
}
