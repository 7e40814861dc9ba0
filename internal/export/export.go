// Package export writes normalized transactions back out as CSV for
// auditing and hand-off to accounting systems.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fuelimport/internal/dateutils"
	"github.com/fleetops/fuelimport/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// csvRow maps one transaction onto the normalized export schema.
type csvRow struct {
	VehicleNr        string `csv:"Vehicle Nr."`
	CardNr           string `csv:"Card Nr."`
	Timestamp        string `csv:"Timestamp"`
	FuelType         string `csv:"Fuel Type"`
	Quantity         string `csv:"Quantity"`
	Unit             string `csv:"Unit"`
	UnitPrice        string `csv:"Unit Price"`
	Amount           string `csv:"Amount"`
	Currency         string `csv:"Currency"`
	OriginalAmount   string `csv:"Original Amount"`
	OriginalCurrency string `csv:"Original Currency"`
	Station          string `csv:"Fuel Station"`
	Country          string `csv:"Country"`
	Enrichment       string `csv:"Enrichment"`
	BatchID          string `csv:"Batch ID"`
}

func toRow(tx models.Transaction) csvRow {
	row := csvRow{
		VehicleNr:        tx.VehicleNr,
		CardNr:           tx.CardNr,
		FuelType:         string(tx.FuelType),
		Quantity:         tx.Quantity.StringFixed(2),
		Unit:             tx.Unit,
		Amount:           tx.Amount.StringFixed(2),
		Currency:         tx.Currency,
		OriginalAmount:   tx.OriginalAmount.StringFixed(2),
		OriginalCurrency: tx.OriginalCurrency,
		Station:          tx.Station,
		Country:          tx.Country,
		Enrichment:       string(tx.Enrichment),
		BatchID:          tx.BatchID,
	}
	if !tx.OccurredAt.IsZero() {
		row.Timestamp = tx.OccurredAt.Format(dateutils.LayoutTimestamp)
	}
	if tx.UnitPrice != nil {
		row.UnitPrice = tx.UnitPrice.StringFixed(3)
	}
	return row
}

// WriteTransactions writes transactions as CSV to w.
func WriteTransactions(transactions []models.Transaction, w io.Writer) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	rows := make([]csvRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, toRow(tx))
	}
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := gocsv.MarshalCSV(&rows, writer); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteTransactionsToFile writes transactions as CSV to csvFile, creating
// parent directories as needed.
func WriteTransactionsToFile(transactions []models.Transaction, csvFile string) error {
	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(csvFile) // #nosec G304 -- output path comes from the operator
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteTransactions(transactions, file); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Wrote transactions to CSV file")
	return nil
}
