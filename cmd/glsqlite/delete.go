package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-sqlite/internal/driver"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the configured database and its journal files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			db := a.cfg.Database

			path, err := driver.FromDir(db.Dir)
			if err != nil {
				return err
			}

			file := filepath.Join(db.Dir, db.Name)
			var size int64
			if info, statErr := os.Stat(file); statErr == nil {
				size = info.Size()
			}

			deleted, err := driver.Delete(path, db.Name, driver.WithLogger(a.log))
			if err != nil {
				return fmt.Errorf("deleting database: %w", err)
			}

			if !deleted {
				fmt.Fprintf(out, "nothing to delete at %s\n", file)
				return nil
			}
			fmt.Fprintf(out, "deleted %s (%s)\n", file, humanize.Bytes(uint64(size))) //nolint:gosec // File sizes are non-negative
			return nil
		},
	}
}
