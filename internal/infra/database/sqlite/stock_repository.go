package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

const (
	dropStocksTable = `DROP TABLE IF EXISTS stocks`

	createStocksTable = `
		CREATE TABLE stocks (
			date      TEXT    NOT NULL UNIQUE,
			open      REAL    NOT NULL,
			high      REAL    NOT NULL,
			low       REAL    NOT NULL,
			close     REAL    NOT NULL,
			adj_close REAL    NOT NULL,
			volume    INTEGER NOT NULL
		)
	`

	insertStock = `
		INSERT INTO stocks (date, open, high, low, close, adj_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	selectStockColumns = `SELECT date, open, high, low, close, adj_close, volume FROM stocks`
)

// StockRepository implements stock.Store on SQLite
type StockRepository struct {
	db *DB
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db *DB) *StockRepository {
	return &StockRepository{db: db}
}

// List returns all records ordered by date
func (r *StockRepository) List(ctx context.Context) ([]stock.StockRecord, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, &stock.StoreError{Op: "acquire", Err: err}
	}
	defer conn.Close()

	records := []stock.StockRecord{}
	if err := conn.SelectContext(ctx, &records, selectStockColumns+` ORDER BY date ASC`); err != nil {
		return nil, &stock.StoreError{Op: "list", Err: err}
	}

	return records, nil
}

// GetByDate returns the record for an exact date string
func (r *StockRepository) GetByDate(ctx context.Context, date string) (*stock.StockRecord, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, &stock.StoreError{Op: "acquire", Err: err}
	}
	defer conn.Close()

	var rec stock.StockRecord
	err = conn.GetContext(ctx, &rec, selectStockColumns+` WHERE date = ?`, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stock.ErrNotFound
		}
		return nil, &stock.StoreError{Op: "get by date", Err: err}
	}

	return &rec, nil
}

// GetLatest returns the record with the greatest ISO date
func (r *StockRepository) GetLatest(ctx context.Context) (*stock.StockRecord, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, &stock.StoreError{Op: "acquire", Err: err}
	}
	defer conn.Close()

	var rec stock.StockRecord
	err = conn.GetContext(ctx, &rec, selectStockColumns+` ORDER BY date DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stock.ErrNotFound
		}
		return nil, &stock.StoreError{Op: "get latest", Err: err}
	}

	return &rec, nil
}

// Ping checks the database file is reachable
func (r *StockRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return &stock.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// ReplaceAll drops, recreates and fills the stocks table in one transaction
func (r *StockRepository) ReplaceAll(ctx context.Context, records []stock.StockRecord) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, &stock.StoreError{Op: "begin", Err: err}
	}
	// no-op after a successful commit
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, dropStocksTable); err != nil {
		return 0, &stock.StoreError{Op: "drop table", Err: err}
	}
	if _, err := tx.ExecContext(ctx, createStocksTable); err != nil {
		return 0, &stock.StoreError{Op: "create table", Err: err}
	}

	stmt, err := tx.PreparexContext(ctx, insertStock)
	if err != nil {
		return 0, &stock.StoreError{Op: "prepare insert", Err: err}
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Date, rec.Open, rec.High, rec.Low, rec.Close, rec.AdjClose, rec.Volume,
		); err != nil {
			return 0, &stock.StoreError{Op: fmt.Sprintf("insert row %d (%s)", i+1, rec.Date), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &stock.StoreError{Op: "commit", Err: err}
	}

	log.Debug().Int("rows", len(records)).Str("path", r.db.Path()).Msg("stocks table replaced")

	return len(records), nil
}

// Close closes the underlying database
func (r *StockRepository) Close() error {
	return r.db.Close()
}

var _ stock.Store = (*StockRepository)(nil)
