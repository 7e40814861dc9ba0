package telematics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fuelimport/internal/models"
	"github.com/fleetops/fuelimport/internal/store"
)

type fakeProvider struct {
	position Position
	err      error
	calls    int
}

func (p *fakeProvider) PositionAt(_ context.Context, _ int64, _ time.Time) (Position, error) {
	p.calls++
	return p.position, p.err
}

func pendingTransaction(id string, unitID *int64, occurredAt time.Time) models.Transaction {
	return models.Transaction{
		ID:         id,
		VehicleNr:  "AB-123",
		FuelType:   models.FuelDiesel,
		Unit:       "L",
		Currency:   "EUR",
		UnitID:     unitID,
		OccurredAt: occurredAt,
		Enrichment: models.EnrichmentPending,
	}
}

func TestEnricherRun(t *testing.T) {
	unitID := int64(777)
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	s := store.NewMemoryStore()
	require.NoError(t, s.Save(pendingTransaction("ok", &unitID, at)))
	require.NoError(t, s.Save(pendingTransaction("no-unit", nil, at)))
	require.NoError(t, s.Save(pendingTransaction("no-time", &unitID, time.Time{})))

	already := pendingTransaction("done", &unitID, at)
	already.Enrichment = models.EnrichmentEnriched
	require.NoError(t, s.Save(already))

	provider := &fakeProvider{position: Position{Lat: 56.95, Lng: 24.11, Odometer: 123456}}
	enriched, failed, err := NewEnricher(s, provider).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, enriched)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, provider.calls, "provider is only consulted when unit id and timestamp exist")

	byID := make(map[string]models.EnrichmentStatus)
	all, err := s.All()
	require.NoError(t, err)
	for _, tx := range all {
		byID[tx.ID] = tx.Enrichment
	}
	assert.Equal(t, models.EnrichmentEnriched, byID["ok"])
	assert.Equal(t, models.EnrichmentFailed, byID["no-unit"])
	assert.Equal(t, models.EnrichmentFailed, byID["no-time"])
	assert.Equal(t, models.EnrichmentEnriched, byID["done"])
}

func TestEnricherProviderErrorMarksFailed(t *testing.T) {
	unitID := int64(777)
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(pendingTransaction("tx-1", &unitID, time.Now())))

	provider := &fakeProvider{err: errors.New("position too far from requested time")}
	enriched, failed, err := NewEnricher(s, provider).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, enriched)
	assert.Equal(t, 1, failed)

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, models.EnrichmentFailed, all[0].Enrichment)
}

func TestEnricherHonorsContextCancellation(t *testing.T) {
	unitID := int64(777)
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(pendingTransaction("tx-1", &unitID, time.Now())))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewEnricher(s, &fakeProvider{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticLookup(t *testing.T) {
	lookup := StaticLookup{"AB-123": 777}

	id, ok := lookup.UnitID("AB-123")
	assert.True(t, ok)
	assert.Equal(t, int64(777), id)

	_, ok = lookup.UnitID("ZZ-000")
	assert.False(t, ok)
}
