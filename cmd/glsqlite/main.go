// glsqlite opens, inspects and deletes embedded SQLite databases using the
// same open strategies an application linking internal/driver would get.
//
// Usage:
//
//	glsqlite probe                 # engine library, SQLite version, tier
//	glsqlite open [--schema DIR]   # open per config, print the outcome
//	glsqlite delete                # remove the database and its companions
//	glsqlite version
//
// Configuration comes from --config, GLSQLITE_CONFIG or configs/glsqlite.yaml.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	// Cancel on Ctrl+C or SIGTERM so an open in progress can unwind.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the command line, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - args: Command line arguments without the program name
//   - out: Destination for command output (logs go where config says)
//
// Returns:
//   - error: nil on success, or error describing failure
func run(ctx context.Context, args []string, out io.Writer) error {
	root := newRootCmd(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
