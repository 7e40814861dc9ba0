package telematics

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/fuelimport/internal/models"
	"github.com/fleetops/fuelimport/internal/store"
)

// Enricher walks pending transactions and attaches GPS/odometer data from
// the provider. It only ever mutates the enrichment status; import fields
// stay untouched.
type Enricher struct {
	store    store.TransactionStore
	provider PositionProvider
}

// NewEnricher builds an enricher over a store and a position provider.
func NewEnricher(s store.TransactionStore, provider PositionProvider) *Enricher {
	return &Enricher{store: s, provider: provider}
}

// Run processes every pending transaction once and reports how many were
// enriched and how many failed. A per-record failure marks that record
// failed and continues; it never aborts the pass.
func (e *Enricher) Run(ctx context.Context) (enriched, failed int, err error) {
	transactions, err := e.store.All()
	if err != nil {
		return 0, 0, err
	}

	for _, tx := range transactions {
		if tx.Enrichment != models.EnrichmentPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return enriched, failed, err
		}

		status := models.EnrichmentEnriched
		switch {
		case tx.UnitID == nil:
			log.WithField("vehicle", tx.VehicleNr).Debug("No unit mapping, marking failed")
			status = models.EnrichmentFailed
		case tx.OccurredAt.IsZero():
			log.WithField("id", tx.ID).Debug("No usable timestamp, marking failed")
			status = models.EnrichmentFailed
		default:
			pos, err := e.provider.PositionAt(ctx, *tx.UnitID, tx.OccurredAt)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"id":      tx.ID,
					"unit_id": *tx.UnitID,
				}).Warn("Position fetch failed")
				status = models.EnrichmentFailed
			} else {
				log.WithFields(logrus.Fields{
					"id":       tx.ID,
					"lat":      pos.Lat,
					"lng":      pos.Lng,
					"odometer": pos.Odometer,
				}).Debug("Transaction enriched")
			}
		}

		if err := e.store.SetEnrichment(tx.ID, status); err != nil {
			return enriched, failed, err
		}
		if status == models.EnrichmentEnriched {
			enriched++
		} else {
			failed++
		}
	}
	return enriched, failed, nil
}
