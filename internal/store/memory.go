package store

import (
	"fmt"
	"sync"

	"github.com/fleetops/fuelimport/internal/models"
)

// MemoryStore is an insertion-ordered in-memory TransactionStore. It backs
// tests and one-shot CLI imports where no database file is wanted.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions []models.Transaction
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends one record.
func (s *MemoryStore) Save(tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return nil
}

// FindByVehicleNr returns records for a vehicle in insertion order.
func (s *MemoryStore) FindByVehicleNr(vehicleNr string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Transaction
	for _, tx := range s.transactions {
		if tx.VehicleNr == vehicleNr {
			result = append(result, tx)
		}
	}
	return result, nil
}

// All returns every record in insertion order.
func (s *MemoryStore) All() ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Transaction, len(s.transactions))
	copy(result, s.transactions)
	return result, nil
}

// SetEnrichment updates the enrichment status of one record.
func (s *MemoryStore) SetEnrichment(id string, status models.EnrichmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions[i].Enrichment = status
			return nil
		}
	}
	return fmt.Errorf("transaction %s not found", id)
}
