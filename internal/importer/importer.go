package importer

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fuelimport/internal/extract"
	"github.com/fleetops/fuelimport/internal/importerror"
	"github.com/fleetops/fuelimport/internal/models"
	"github.com/fleetops/fuelimport/internal/store"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const batchPrefix = "import"

// newBatchID builds the identifier stamped on every record of one
// invocation: prefix, creation timestamp, short random suffix.
func newBatchID(now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", batchPrefix, now.Format("20060102150405"), uuid.NewString()[:8])
}

// Importer drives a whole CSV export through the row parser and persists the
// results. It is single-threaded and synchronous: rows are processed in file
// order within the calling goroutine.
type Importer struct {
	parser *RowParser
	store  store.TransactionStore
}

// New builds an importer from a row parser and a persistence store.
func New(parser *RowParser, s store.TransactionStore) *Importer {
	return &Importer{parser: parser, store: s}
}

// ImportFromCSV imports one raw CSV export and returns the batch report.
// Per-row failures are recorded and counted, never propagated: one bad row
// must not abort its siblings. Rows that pass are persisted immediately,
// append-only; already-persisted rows stay committed whatever happens later.
func (i *Importer) ImportFromCSV(raw string) models.BatchReport {
	report := models.BatchReport{
		BatchID: newBatchID(time.Now()),
		Errors:  []string{},
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("malformed CSV: %v", err))
		return report
	}
	if len(records) < 2 {
		report.Errors = append(report.Errors, (&importerror.NoDataError{Lines: len(records)}).Error())
		return report
	}

	header := extract.HeaderMap(records[0])
	for n, cells := range records[1:] {
		if isBlank(cells) {
			continue
		}
		rowNr := n + 1

		row := extract.NewRow(header, cells)
		tx, skip, err := i.parser.ParseRow(row, report.BatchID)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", rowNr, err))
			continue
		}
		if skip {
			report.Skipped++
			continue
		}
		if err := i.store.Save(tx); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", rowNr, err))
			continue
		}
		report.Imported++
	}

	log.WithFields(logrus.Fields{
		"batch_id": report.BatchID,
		"imported": report.Imported,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
	}).Info("Import completed")
	return report
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
