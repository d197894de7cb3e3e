package main

import (
	"fmt"

	"equipment-loan/internal/config"
	infradb "equipment-loan/internal/infrastructure/db"
	"equipment-loan/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func (a *app) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) connector() (*infradb.Connector, error) {
	if a.cfg.DBPath == "" {
		return nil, fmt.Errorf("missing DB_PATH")
	}
	return infradb.NewConnector(a.cfg.DBPath, a.log.Named("db")), nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "equipment-loan",
		Short:         "Equipment loan requests and review workflow",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newMigrateCommand(a))
	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newTestEmailCommand(a))

	return rootCmd
}
