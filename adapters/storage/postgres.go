// Package storage - Postgres-backed invoice store
package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"cloudpool/core/types"
	"cloudpool/internal/errors"
)

const invoiceSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id               TEXT PRIMARY KEY,
	customer_name    TEXT NOT NULL,
	records          JSONB NOT NULL,
	total_cost       DOUBLE PRECISION NOT NULL,
	uploaded_at      TIMESTAMPTZ NOT NULL,
	source_file_name TEXT NOT NULL DEFAULT ''
)`

// PostgresStore persists invoices in a Postgres table. Records are kept
// as a JSONB document; the engine never queries inside them.
type PostgresStore struct {
	db *sqlx.DB
}

type invoiceRow struct {
	ID             string  `db:"id"`
	CustomerName   string  `db:"customer_name"`
	Records        []byte  `db:"records"`
	TotalCost      float64 `db:"total_cost"`
	UploadedAt     sql.NullTime
	SourceFileName string `db:"source_file_name"`
}

// NewPostgresStore connects to Postgres and ensures the schema
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New(errors.TypeConfig, "postgres store requires a DSN")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Storage("connecting to postgres", err)
	}
	if _, err := db.Exec(invoiceSchema); err != nil {
		db.Close()
		return nil, errors.Storage("ensuring invoice schema", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) scanInvoice(row *invoiceRow) (types.Invoice, error) {
	var records []types.UsageRecord
	if err := json.Unmarshal(row.Records, &records); err != nil {
		return types.Invoice{}, errors.Storage("decoding invoice records for "+row.ID, err)
	}
	inv := types.Invoice{
		ID:             row.ID,
		CustomerName:   row.CustomerName,
		Records:        records,
		TotalCost:      row.TotalCost,
		SourceFileName: row.SourceFileName,
	}
	if row.UploadedAt.Valid {
		inv.UploadedAt = row.UploadedAt.Time
	}
	return inv, nil
}

// List returns every stored invoice in upload order
func (s *PostgresStore) List(ctx context.Context) ([]types.Invoice, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, customer_name, records, total_cost, uploaded_at, source_file_name
		FROM invoices
		ORDER BY uploaded_at, id`)
	if err != nil {
		return nil, errors.Storage("listing invoices", err)
	}
	defer rows.Close()

	var invoices []types.Invoice
	for rows.Next() {
		var row invoiceRow
		if err := rows.Scan(&row.ID, &row.CustomerName, &row.Records, &row.TotalCost, &row.UploadedAt, &row.SourceFileName); err != nil {
			return nil, errors.Storage("scanning invoice row", err)
		}
		inv, err := s.scanInvoice(&row)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Get retrieves an invoice by ID
func (s *PostgresStore) Get(ctx context.Context, id string) (types.Invoice, error) {
	var row invoiceRow
	err := s.db.QueryRowxContext(ctx, `
		SELECT id, customer_name, records, total_cost, uploaded_at, source_file_name
		FROM invoices WHERE id = $1`, id).
		Scan(&row.ID, &row.CustomerName, &row.Records, &row.TotalCost, &row.UploadedAt, &row.SourceFileName)
	if err == sql.ErrNoRows {
		return types.Invoice{}, errors.NotFound("invoice", id)
	}
	if err != nil {
		return types.Invoice{}, errors.Storage("getting invoice "+id, err)
	}
	return s.scanInvoice(&row)
}

// Append stores a new invoice
func (s *PostgresStore) Append(ctx context.Context, inv types.Invoice) error {
	records, err := json.Marshal(inv.Records)
	if err != nil {
		return errors.Storage("encoding invoice records for "+inv.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_name, records, total_cost, uploaded_at, source_file_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		inv.ID, inv.CustomerName, records, inv.TotalCost, inv.UploadedAt, inv.SourceFileName)
	if err != nil {
		return errors.Storage("inserting invoice "+inv.ID, err)
	}
	return nil
}

// Remove deletes an invoice by ID
func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return errors.Storage("deleting invoice "+id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errors.NotFound("invoice", id)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
