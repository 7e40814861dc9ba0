// Package common builds the shared collaborators the commands wire together.
package common

import (
	"github.com/spf13/cobra"

	"github.com/fleetops/fuelimport/internal/classifier"
	"github.com/fleetops/fuelimport/internal/config"
	"github.com/fleetops/fuelimport/internal/currencyutils"
	"github.com/fleetops/fuelimport/internal/store"
	"github.com/fleetops/fuelimport/internal/telematics"
)

// NewConverter builds the currency converter from configuration: rates from
// the configured YAML file when set, the built-in table otherwise.
func NewConverter(cfg *config.Config) (*currencyutils.Converter, error) {
	var rates currencyutils.RateProvider
	if cfg.Import.RatesFile != "" {
		loaded, err := currencyutils.LoadRates(cfg.Import.RatesFile)
		if err != nil {
			return nil, err
		}
		rates = loaded
	}
	return currencyutils.NewConverter(cfg.Import.SettlementCurrency, rates), nil
}

// NewClassifier builds the product classifier from configuration.
func NewClassifier(cfg *config.Config) (*classifier.Classifier, error) {
	if cfg.Import.RulesFile != "" {
		return classifier.Load(cfg.Import.RulesFile)
	}
	return classifier.Default(), nil
}

// NewStore opens the configured store: SQLite when a path is set (the --db
// flag wins over config), in-memory otherwise.
func NewStore(cmd *cobra.Command, cfg *config.Config) (store.TransactionStore, func(), error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = cfg.Store.Path
	}
	if path == "" {
		return store.NewMemoryStore(), func() {}, nil
	}
	s, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { _ = s.Close() }, nil
}

// NewVehicleLookup picks the provider-backed lookup when a telematics API is
// configured, falling back to the static unit map from configuration.
func NewVehicleLookup(cfg *config.Config) telematics.VehicleLookup {
	if cfg.Telematics.BaseURL != "" {
		return telematics.NewClient(cfg.Telematics.BaseURL, cfg.Telematics.APIKey)
	}
	return telematics.StaticLookup(cfg.Telematics.Units)
}
