// Package migrations embeds the default schema plan into the binary.
//
// The CLI uses it when no schema directory is configured, so a database
// opened with glsqlite always carries a small metadata table.
package migrations

import (
	"embed"

	"github.com/nerrad567/gray-logic-sqlite/internal/schema"
)

//go:embed *.sql
var migrationsFS embed.FS

// Plan loads the embedded steps.
func Plan() (*schema.Plan, error) {
	return schema.Load(migrationsFS, ".")
}
