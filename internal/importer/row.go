// Package importer turns raw fuel-card CSV exports into validated,
// currency-normalized, classified transaction records.
package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetops/fuelimport/internal/classifier"
	"github.com/fleetops/fuelimport/internal/currencyutils"
	"github.com/fleetops/fuelimport/internal/dateutils"
	"github.com/fleetops/fuelimport/internal/extract"
	"github.com/fleetops/fuelimport/internal/importerror"
	"github.com/fleetops/fuelimport/internal/models"
	"github.com/fleetops/fuelimport/internal/telematics"
)

// Fixed, case-sensitive column names of the export schema.
const (
	colDate        = "Date"
	colTime        = "Time"
	colCardNr      = "Card Nr."
	colVehicleNr   = "Vehicle Nr."
	colProduct     = "Product"
	colAmount      = "Amount"
	colTotalSum    = "Total sum"
	colCurrency    = "Currency"
	colCountry     = "Country"
	colCountryISO  = "Country ISO"
	colFuelStation = "Fuel station"
)

// RowParser builds one transaction record from one CSV row.
type RowParser struct {
	classifier *classifier.Classifier
	converter  *currencyutils.Converter
	vehicles   telematics.VehicleLookup
}

// NewRowParser wires the classifier, converter and vehicle lookup together.
func NewRowParser(c *classifier.Classifier, conv *currencyutils.Converter, vehicles telematics.VehicleLookup) *RowParser {
	return &RowParser{classifier: c, converter: conv, vehicles: vehicles}
}

// ParseRow builds a transaction from a row. skip=true means the row is not a
// fuel purchase; it is a distinct outcome, not an error. The fuel gate runs
// first so non-fuel rows cost no further parsing.
func (p *RowParser) ParseRow(row extract.Row, batchID string) (models.Transaction, bool, error) {
	product := row.OptionalDefault(colProduct, "")
	if !p.classifier.IsFuel(product) {
		return models.Transaction{}, true, nil
	}

	vehicleNr := row.OptionalDefault(colVehicleNr, "")
	if vehicleNr == "" {
		return models.Transaction{}, false, &importerror.InvalidVehicleError{}
	}

	var unitID *int64
	if id, ok := p.vehicles.UnitID(vehicleNr); ok {
		unitID = &id
	}

	fuelType := p.classifier.Classify(product)

	rawQuantity, err := row.Required(colAmount)
	if err != nil {
		return models.Transaction{}, false, err
	}
	quantity := currencyutils.ParseDecimal(rawQuantity)

	rawTotal, err := row.Required(colTotalSum)
	if err != nil {
		return models.Transaction{}, false, err
	}
	originalCurrency, err := row.Required(colCurrency)
	if err != nil {
		return models.Transaction{}, false, err
	}
	originalAmount := currencyutils.ParseDecimal(rawTotal)
	amount := p.converter.Convert(originalAmount, originalCurrency)

	// Unit price is derived, never divided by a zero quantity.
	var unitPrice *decimal.Decimal
	if quantity.IsPositive() {
		price := amount.Div(quantity)
		unitPrice = &price
	}

	occurredAt := dateutils.ParseTimestamp(dateutils.CombineDateTime(
		row.OptionalDefault(colDate, ""),
		row.OptionalDefault(colTime, ""),
	))

	// Country prefers the ISO column, falling back to the free-text one.
	country := row.OptionalDefault(colCountryISO, "")
	if country == "" {
		country = row.OptionalDefault(colCountry, "")
	}

	tx := models.Transaction{
		ID:               uuid.NewString(),
		VehicleNr:        vehicleNr,
		CardNr:           row.OptionalDefault(colCardNr, ""),
		OccurredAt:       occurredAt,
		Station:          row.OptionalDefault(colFuelStation, ""),
		Country:          country,
		FuelType:         fuelType,
		Quantity:         quantity,
		Unit:             fuelType.Unit(),
		UnitPrice:        unitPrice,
		Amount:           amount,
		Currency:         p.converter.Settlement(),
		OriginalAmount:   originalAmount,
		OriginalCurrency: strings.ToUpper(originalCurrency),
		UnitID:           unitID,
		Enrichment:       models.EnrichmentPending,
		BatchID:          batchID,
		CreatedAt:        time.Now(),
	}
	return tx, false, nil
}
