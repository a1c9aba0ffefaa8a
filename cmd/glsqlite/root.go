package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-sqlite/internal/infrastructure/logging"
)

// Default configuration file path
const defaultConfigPath = "configs/glsqlite.yaml"

// app carries what every subcommand needs once the root has run.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logging.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "glsqlite",
		Short:         "Open, inspect and delete embedded SQLite databases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"configuration file (default $GLSQLITE_CONFIG or "+defaultConfigPath+")")

	root.AddCommand(
		newProbeCmd(a),
		newOpenCmd(a),
		newDeleteCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and builds the logger.
func (a *app) load() error {
	cfg, path, err := loadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging, version)
	a.log.Debug("configuration loaded", "path", path)
	return nil
}

// loadConfig resolves the configuration file. An explicitly named file must
// exist; without one the defaults (plus environment overrides) are used.
func loadConfig(flagPath string) (*config.Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("GLSQLITE_CONFIG")
	}
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}

	if _, err := os.Stat(defaultConfigPath); errors.Is(err, fs.ErrNotExist) {
		cfg, err := config.Default()
		return cfg, "(defaults)", err
	}
	cfg, err := config.Load(defaultConfigPath)
	return cfg, defaultConfigPath, err
}
