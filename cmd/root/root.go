// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fleetops/fuelimport/internal/classifier"
	"github.com/fleetops/fuelimport/internal/config"
	"github.com/fleetops/fuelimport/internal/currencyutils"
	"github.com/fleetops/fuelimport/internal/export"
	"github.com/fleetops/fuelimport/internal/importer"
	"github.com/fleetops/fuelimport/internal/server"
	"github.com/fleetops/fuelimport/internal/store"
	"github.com/fleetops/fuelimport/internal/telematics"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "fuelimport",
		Short: "Import fuel-card CSV exports into normalized transaction records.",
		Long: `fuelimport ingests fuel-card transaction exports from multiple providers,
normalizes amounts into the settlement currency, classifies products into
fuel categories and stores the records for telematics enrichment.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			// Hand the configured logger to every package.
			currencyutils.SetLogger(Log)
			classifier.SetLogger(Log)
			importer.SetLogger(Log)
			store.SetLogger(Log)
			telematics.SetLogger(Log)
			server.SetLogger(Log)
			export.SetLogger(Log)
			return nil
		},
	}
)

// Init initializes the root command flags.
func Init() {
	Cmd.PersistentFlags().String("db", "", "Path to the SQLite database (overrides config)")
}
