package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fuelimport/internal/classifier"
	"github.com/fleetops/fuelimport/internal/currencyutils"
	"github.com/fleetops/fuelimport/internal/models"
	"github.com/fleetops/fuelimport/internal/store"
	"github.com/fleetops/fuelimport/internal/telematics"
)

const csvHeader = "Date,Time,Card Nr.,Vehicle Nr.,Product,Amount,Total sum,Currency,Country,Country ISO,Fuel station"

func newTestImporter(s store.TransactionStore) *Importer {
	lookup := telematics.StaticLookup{"AB-123": 777}
	parser := NewRowParser(classifier.Default(), currencyutils.NewConverter("EUR", nil), lookup)
	return New(parser, s)
}

func importCSV(t *testing.T, lines ...string) (models.BatchReport, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	report := newTestImporter(s).ImportFromCSV(strings.Join(lines, "\n"))
	return report, s
}

func TestImportFromCSV(t *testing.T) {
	report, s := importCSV(t,
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Diesel,"50,5","61,50",EUR,Latvia,LV,Circle K Riga`,
		`16.01.2024,11:00:00,C002,AB-123,Super 95,40,"310,00",PLN,Poland,PL,Orlen Warszawa`,
		`16.01.2024,12:00:00,C001,AB-123,Coffee,1,"3,50",EUR,Latvia,LV,Circle K Riga`,
		`17.01.2024,08:15:00,C003,,Diesel,10,"15,00",EUR,,,Shell`,
		`18.01.2024,09:00:00,C004,XX-999,AdBlue,10,"12,00",EUR,Lithuania,LT,Viada`,
	)

	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Row 4")
	assert.Contains(t, report.Errors[0], "vehicle")

	transactions, err := s.All()
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	diesel := transactions[0]
	assert.Equal(t, "AB-123", diesel.VehicleNr)
	assert.Equal(t, "C001", diesel.CardNr)
	assert.Equal(t, models.FuelDiesel, diesel.FuelType)
	assert.Equal(t, "L", diesel.Unit)
	assert.True(t, diesel.Quantity.Equal(decimal.RequireFromString("50.5")))
	assert.True(t, diesel.Amount.Equal(decimal.RequireFromString("61.50")))
	assert.Equal(t, "EUR", diesel.Currency)
	assert.Equal(t, "LV", diesel.Country)
	assert.Equal(t, "Circle K Riga", diesel.Station)
	assert.Equal(t, models.EnrichmentPending, diesel.Enrichment)
	assert.Equal(t, report.BatchID, diesel.BatchID)
	assert.Equal(t, "2024-01-15 10:30:00", diesel.OccurredAt.Format("2006-01-02 15:04:05"))
	require.NotNil(t, diesel.UnitID)
	assert.Equal(t, int64(777), *diesel.UnitID)
	require.NotNil(t, diesel.UnitPrice)
	assert.True(t, diesel.UnitPrice.Equal(decimal.RequireFromString("61.50").Div(decimal.RequireFromString("50.5"))))

	petrol := transactions[1]
	assert.Equal(t, models.FuelPetrol, petrol.FuelType)
	assert.True(t, petrol.Amount.Equal(decimal.RequireFromString("68.20")), "got %s", petrol.Amount)
	assert.Equal(t, "EUR", petrol.Currency)
	assert.True(t, petrol.OriginalAmount.Equal(decimal.RequireFromString("310.00")))
	assert.Equal(t, "PLN", petrol.OriginalCurrency)

	adblue := transactions[2]
	assert.Equal(t, models.FuelAdBlue, adblue.FuelType)
	assert.Nil(t, adblue.UnitID, "unknown vehicle resolves to no unit id")
}

func TestImportCountsAddUp(t *testing.T) {
	report, _ := importCSV(t,
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Diesel,50,"61,50",EUR,Latvia,LV,Circle K`,
		`15.01.2024,10:31:00,C001,AB-123,Car Wash,1,"9,00",EUR,Latvia,LV,Circle K`,
		`15.01.2024,10:32:00,C001,,Diesel,50,"61,50",EUR,Latvia,LV,Circle K`,
		`15.01.2024,10:33:00,C001,AB-123,Unknown Fuel,5,"8,00",EUR,Latvia,LV,Circle K`,
	)

	assert.Equal(t, 4, report.Imported+report.Skipped+report.Failed)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Failed)
}

func TestImportUnknownFuelClassifiesAsOther(t *testing.T) {
	_, s := importCSV(t,
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Unknown Fuel,5,"8,00",EUR,Latvia,LV,Circle K`,
	)

	transactions, err := s.All()
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.FuelOther, transactions[0].FuelType)
}

func TestImportHeaderOnly(t *testing.T) {
	report, s := importCSV(t, csvHeader)

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Skipped)
	require.NotEmpty(t, report.Errors)
	assert.Contains(t, report.Errors[0], "no data rows")

	transactions, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestImportEmptyInput(t *testing.T) {
	report, _ := importCSV(t, "")

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.Failed)
	require.NotEmpty(t, report.Errors)
}

func TestImportSkippedRowsNeverPersist(t *testing.T) {
	_, s := importCSV(t,
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Coffee,1,"3,50",EUR,Latvia,LV,Circle K`,
		`15.01.2024,10:31:00,C001,AB-123,Car Wash,1,"9,00",EUR,Latvia,LV,Circle K`,
	)

	transactions, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestImportMissingColumn(t *testing.T) {
	report, _ := importCSV(t,
		"Date,Time,Card Nr.,Vehicle Nr.,Product,Amount,Currency,Country,Country ISO,Fuel station",
		`15.01.2024,10:30:00,C001,AB-123,Diesel,50,EUR,Latvia,LV,Circle K`,
	)

	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Total sum")
}

func TestImportBlankLinesIgnored(t *testing.T) {
	report, _ := importCSV(t,
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Diesel,50,"61,50",EUR,Latvia,LV,Circle K`,
		"",
		"",
	)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Skipped)
}

func TestImportZeroQuantityHasNoUnitPrice(t *testing.T) {
	_, s := importCSV(t,
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Diesel,"0","61,50",EUR,Latvia,LV,Circle K`,
	)

	transactions, err := s.All()
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Nil(t, transactions[0].UnitPrice)
	assert.True(t, transactions[0].Quantity.IsZero())
}

func TestReimportDuplicates(t *testing.T) {
	// Idempotence is explicitly not guaranteed: importing the same file
	// twice doubles the records.
	csv := strings.Join([]string{
		csvHeader,
		`15.01.2024,10:30:00,C001,AB-123,Diesel,50,"61,50",EUR,Latvia,LV,Circle K`,
	}, "\n")

	s := store.NewMemoryStore()
	imp := newTestImporter(s)
	first := imp.ImportFromCSV(csv)
	second := imp.ImportFromCSV(csv)

	assert.Equal(t, 1, first.Imported)
	assert.Equal(t, 1, second.Imported)

	transactions, err := s.All()
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.NotEqual(t, transactions[0].BatchID, transactions[1].BatchID)
}

func TestBatchIDsUnique(t *testing.T) {
	s := store.NewMemoryStore()
	imp := newTestImporter(s)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		report := imp.ImportFromCSV(csvHeader)
		assert.False(t, seen[report.BatchID], "duplicate batch id %s", report.BatchID)
		seen[report.BatchID] = true
		assert.True(t, strings.HasPrefix(report.BatchID, "import-"))
	}
}
