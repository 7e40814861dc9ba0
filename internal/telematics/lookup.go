// Package telematics integrates with the external GPS/odometer provider:
// vehicle-to-unit resolution for the importer and position enrichment for
// records already imported.
package telematics

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// VehicleLookup resolves a vehicle number to the provider's unit id.
// A missing mapping is not an error; the caller leaves the field unset.
type VehicleLookup interface {
	UnitID(vehicleNr string) (int64, bool)
}

// StaticLookup is a fixed vehicle-number to unit-id map, typically loaded
// from configuration. Useful when the provider API is not reachable.
type StaticLookup map[string]int64

// UnitID returns the mapped unit id for a vehicle number.
func (l StaticLookup) UnitID(vehicleNr string) (int64, bool) {
	id, ok := l[vehicleNr]
	return id, ok
}
