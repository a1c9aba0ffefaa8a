package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-sqlite/internal/driver"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/database"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print the SQLite engine, its version and the capability tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			probed := driver.NewEngineProbe(a.log).Tier(ctx)
			fmt.Fprintf(out, "engine:       %s\n", database.Library)

			v, err := database.LibVersion(ctx)
			if err != nil {
				fmt.Fprintf(out, "sqlite:       unknown (%v)\n", err)
			} else {
				fmt.Fprintf(out, "sqlite:       %s\n", v)
			}
			fmt.Fprintf(out, "tier:         %s\n", probed)

			probe, err := probeFor(a.cfg.Database.Tier, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "tier in use:  %s (config %q)\n", probe.Tier(ctx), a.cfg.Database.Tier)
			return nil
		},
	}
}
