package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/fleetops/fuelimport/internal/models"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	vehicle_nr TEXT NOT NULL,
	card_nr TEXT,
	occurred_at TEXT,
	station TEXT,
	country TEXT,
	fuel_type TEXT NOT NULL,
	quantity TEXT NOT NULL,
	unit TEXT NOT NULL,
	unit_price TEXT,
	amount TEXT NOT NULL,
	currency TEXT NOT NULL,
	original_amount TEXT NOT NULL,
	original_currency TEXT NOT NULL,
	unit_id INTEGER,
	enrichment TEXT NOT NULL,
	batch_id TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_vehicle ON transactions(vehicle_nr);
CREATE INDEX IF NOT EXISTS idx_transactions_batch ON transactions(batch_id);
`

// SQLiteStore is a TransactionStore backed by an embedded SQLite database.
// Monetary values are stored as decimal strings to avoid float drift.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", path, err)
	}
	if _, err := db.Exec(createTableStatement); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	log.WithField("path", path).Debug("Opened SQLite transaction store")
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save appends one record.
func (s *SQLiteStore) Save(tx models.Transaction) error {
	var unitPrice sql.NullString
	if tx.UnitPrice != nil {
		unitPrice = sql.NullString{String: tx.UnitPrice.String(), Valid: true}
	}
	var unitID sql.NullInt64
	if tx.UnitID != nil {
		unitID = sql.NullInt64{Int64: *tx.UnitID, Valid: true}
	}
	var occurredAt string
	if !tx.OccurredAt.IsZero() {
		occurredAt = tx.OccurredAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO transactions (
			id, vehicle_nr, card_nr, occurred_at, station, country,
			fuel_type, quantity, unit, unit_price, amount, currency,
			original_amount, original_currency, unit_id, enrichment,
			batch_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.VehicleNr, tx.CardNr, occurredAt, tx.Station, tx.Country,
		string(tx.FuelType), tx.Quantity.String(), tx.Unit, unitPrice,
		tx.Amount.String(), tx.Currency, tx.OriginalAmount.String(),
		tx.OriginalCurrency, unitID, string(tx.Enrichment),
		tx.BatchID, tx.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("error saving transaction: %w", err)
	}
	return nil
}

// FindByVehicleNr returns records for a vehicle in insertion order.
func (s *SQLiteStore) FindByVehicleNr(vehicleNr string) ([]models.Transaction, error) {
	return s.query(`WHERE vehicle_nr = ?`, vehicleNr)
}

// All returns every record in insertion order.
func (s *SQLiteStore) All() ([]models.Transaction, error) {
	return s.query(``)
}

func (s *SQLiteStore) query(where string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, vehicle_nr, card_nr, occurred_at, station, country,
			fuel_type, quantity, unit, unit_price, amount, currency,
			original_amount, original_currency, unit_id, enrichment,
			batch_id, created_at
		FROM transactions `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.WithError(err).Warn("Failed to close result set")
		}
	}()

	var result []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return result, nil
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		tx                              models.Transaction
		occurredAt, createdAt, fuelType string
		quantity, amount, original      string
		enrichment                      string
		unitPrice                       sql.NullString
		unitID                          sql.NullInt64
	)
	err := rows.Scan(
		&tx.ID, &tx.VehicleNr, &tx.CardNr, &occurredAt, &tx.Station, &tx.Country,
		&fuelType, &quantity, &tx.Unit, &unitPrice, &amount, &tx.Currency,
		&original, &tx.OriginalCurrency, &unitID, &enrichment,
		&tx.BatchID, &createdAt,
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("error scanning transaction: %w", err)
	}

	tx.FuelType = models.FuelType(fuelType)
	tx.Enrichment = models.EnrichmentStatus(enrichment)
	if tx.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return models.Transaction{}, fmt.Errorf("corrupt quantity for %s: %w", tx.ID, err)
	}
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Transaction{}, fmt.Errorf("corrupt amount for %s: %w", tx.ID, err)
	}
	if tx.OriginalAmount, err = decimal.NewFromString(original); err != nil {
		return models.Transaction{}, fmt.Errorf("corrupt original amount for %s: %w", tx.ID, err)
	}
	if unitPrice.Valid {
		price, err := decimal.NewFromString(unitPrice.String)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("corrupt unit price for %s: %w", tx.ID, err)
		}
		tx.UnitPrice = &price
	}
	if unitID.Valid {
		id := unitID.Int64
		tx.UnitID = &id
	}
	if occurredAt != "" {
		if t, err := time.Parse(time.RFC3339, occurredAt); err == nil {
			tx.OccurredAt = t
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		tx.CreatedAt = t
	}
	return tx, nil
}

// SetEnrichment updates the enrichment status of one record.
func (s *SQLiteStore) SetEnrichment(id string, status models.EnrichmentStatus) error {
	res, err := s.db.Exec(`UPDATE transactions SET enrichment = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("error updating enrichment status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}
