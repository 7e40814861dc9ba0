// Package store persists imported transactions. Saves are append-only: the
// import pipeline never deduplicates, so re-importing the same file creates
// duplicate records.
package store

import (
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fuelimport/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TransactionStore is the persistence contract consumed by the import
// pipeline and the enrichment subsystem. Concurrency discipline is the
// store's responsibility, not the caller's.
type TransactionStore interface {
	// Save appends one record. It must not retry internally.
	Save(tx models.Transaction) error

	// FindByVehicleNr returns records for a vehicle in insertion order.
	FindByVehicleNr(vehicleNr string) ([]models.Transaction, error)

	// All returns every record in insertion order.
	All() ([]models.Transaction, error)

	// SetEnrichment updates the enrichment status of one record. Only the
	// enrichment subsystem calls this; the importer never does.
	SetEnrichment(id string, status models.EnrichmentStatus) error
}
