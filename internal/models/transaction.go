// Package models defines the core domain types produced by the import pipeline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementCurrency is the fixed currency every imported amount is normalized into.
const SettlementCurrency = "EUR"

// FuelType is the product category assigned to an imported transaction.
type FuelType string

const (
	FuelDiesel   FuelType = "diesel"
	FuelPetrol   FuelType = "petrol"
	FuelLPG      FuelType = "lpg"
	FuelAdBlue   FuelType = "adblue"
	FuelCNG      FuelType = "cng"
	FuelElectric FuelType = "electric"
	FuelOther    FuelType = "other"
)

// FuelTypes lists all valid categories in declaration order.
func FuelTypes() []FuelType {
	return []FuelType{
		FuelDiesel,
		FuelPetrol,
		FuelLPG,
		FuelAdBlue,
		FuelCNG,
		FuelElectric,
		FuelOther,
	}
}

// Unit returns the unit of measure for quantities of this fuel type.
func (f FuelType) Unit() string {
	switch f {
	case FuelElectric:
		return "kWh"
	case FuelCNG:
		return "kg"
	default:
		return "L"
	}
}

// EnrichmentStatus tracks whether GPS/odometer enrichment has been attempted
// for a transaction. The import pipeline always sets it to pending; only the
// enrichment subsystem mutates it afterwards.
type EnrichmentStatus string

const (
	EnrichmentPending  EnrichmentStatus = "pending"
	EnrichmentEnriched EnrichmentStatus = "enriched"
	EnrichmentFailed   EnrichmentStatus = "failed"
)

// Transaction is the canonical unit of import output: one validated,
// currency-normalized, classified fuel-card purchase.
type Transaction struct {
	ID               string           `json:"id"`
	VehicleNr        string           `json:"vehicle_nr"`
	CardNr           string           `json:"card_nr,omitempty"`
	OccurredAt       time.Time        `json:"occurred_at"`
	Station          string           `json:"station,omitempty"`
	Country          string           `json:"country,omitempty"`
	FuelType         FuelType         `json:"fuel_type"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Unit             string           `json:"unit"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	OriginalAmount   decimal.Decimal  `json:"original_amount"`
	OriginalCurrency string           `json:"original_currency"`
	UnitID           *int64           `json:"unit_id,omitempty"`
	Enrichment       EnrichmentStatus `json:"enrichment"`
	BatchID          string           `json:"batch_id"`
	CreatedAt        time.Time        `json:"created_at"`
}

// HasUnitPrice reports whether a unit price could be derived for this record.
func (t Transaction) HasUnitPrice() bool {
	return t.UnitPrice != nil
}
