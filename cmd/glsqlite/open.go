package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-sqlite/internal/driver"
)

func newOpenCmd(a *app) *cobra.Command {
	var schemaDir string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the configured database and print how it was opened",
		Long: `Open the configured database through the strategy the capability tier
selects, creating or upgrading its schema with the step files in --schema
(or database.schema_dir, or the built-in plan), then print the outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			dir := schemaDir
			if dir == "" {
				dir = a.cfg.Database.SchemaDir
			}
			plan, err := loadPlan(dir)
			if err != nil {
				return fmt.Errorf("loading schema: %w", err)
			}

			cfg, err := driverConfig(a.cfg, plan)
			if err != nil {
				return err
			}
			probe, err := probeFor(a.cfg.Database.Tier, a.log)
			if err != nil {
				return err
			}

			conn, err := driver.Open(ctx, cfg, driver.WithProbe(probe), driver.WithLogger(a.log))
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer func() {
				if closeErr := conn.Close(); closeErr != nil {
					a.log.Error("error closing database", "error", closeErr)
				}
			}()

			userVersion, err := conn.Version(ctx)
			if err != nil {
				return err
			}
			journal, err := conn.JournalMode(ctx)
			if err != nil {
				return err
			}
			sync, err := conn.SynchronousMode(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "path:         %s\n", conn.Path())
			fmt.Fprintf(out, "strategy:     %s\n", conn.Strategy())
			fmt.Fprintf(out, "read only:    %t\n", conn.ReadOnly())
			fmt.Fprintf(out, "in memory:    %t\n", conn.InMemory())
			fmt.Fprintf(out, "version:      %d\n", userVersion)
			fmt.Fprintf(out, "journal:      %s\n", journal)
			fmt.Fprintf(out, "synchronous:  %s\n", sync)
			if !conn.InMemory() {
				if info, statErr := os.Stat(conn.Path()); statErr == nil {
					fmt.Fprintf(out, "size:         %s\n", humanize.Bytes(uint64(info.Size()))) //nolint:gosec // File sizes are non-negative
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaDir, "schema", "", "directory of NNNN_name.up.sql schema steps")
	return cmd
}
