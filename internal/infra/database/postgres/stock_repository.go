package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

const (
	dropStocksTable = `DROP TABLE IF EXISTS stocks`

	createStocksTable = `
		CREATE TABLE stocks (
			date      TEXT             NOT NULL UNIQUE,
			open      DOUBLE PRECISION NOT NULL,
			high      DOUBLE PRECISION NOT NULL,
			low       DOUBLE PRECISION NOT NULL,
			close     DOUBLE PRECISION NOT NULL,
			adj_close DOUBLE PRECISION NOT NULL,
			volume    BIGINT           NOT NULL
		)
	`

	selectStockColumns = `SELECT date, open, high, low, close, adj_close, volume FROM stocks`
)

// StockRepository implements stock.Store using PostgreSQL
type StockRepository struct {
	pool *Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(pool *Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// List returns all records ordered by date
func (r *StockRepository) List(ctx context.Context) ([]stock.StockRecord, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, &stock.StoreError{Op: "acquire", Err: err}
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, selectStockColumns+` ORDER BY date ASC`)
	if err != nil {
		return nil, &stock.StoreError{Op: "list", Err: err}
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[stock.StockRecord])
	if err != nil {
		return nil, &stock.StoreError{Op: "scan stocks", Err: err}
	}
	if records == nil {
		records = []stock.StockRecord{}
	}

	return records, nil
}

// GetByDate returns the record for an exact date string
func (r *StockRepository) GetByDate(ctx context.Context, date string) (*stock.StockRecord, error) {
	return r.getOne(ctx, "get by date", selectStockColumns+` WHERE date = $1`, date)
}

// GetLatest returns the record with the greatest ISO date
func (r *StockRepository) GetLatest(ctx context.Context) (*stock.StockRecord, error) {
	return r.getOne(ctx, "get latest", selectStockColumns+` ORDER BY date DESC LIMIT 1`)
}

func (r *StockRepository) getOne(ctx context.Context, op, query string, args ...any) (*stock.StockRecord, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, &stock.StoreError{Op: "acquire", Err: err}
	}
	defer conn.Release()

	var rec stock.StockRecord
	err = conn.QueryRow(ctx, query, args...).Scan(
		&rec.Date, &rec.Open, &rec.High, &rec.Low, &rec.Close, &rec.AdjClose, &rec.Volume,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrNotFound
		}
		return nil, &stock.StoreError{Op: op, Err: err}
	}

	return &rec, nil
}

// Ping checks the pool can reach the server
func (r *StockRepository) Ping(ctx context.Context) error {
	if err := r.pool.Health(ctx); err != nil {
		return &stock.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// ReplaceAll drops, recreates and bulk-copies the stocks table in one transaction
func (r *StockRepository) ReplaceAll(ctx context.Context, records []stock.StockRecord) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, &stock.StoreError{Op: "begin", Err: err}
	}
	// no-op after a successful commit
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, dropStocksTable); err != nil {
		return 0, &stock.StoreError{Op: "drop table", Err: err}
	}
	if _, err := tx.Exec(ctx, createStocksTable); err != nil {
		return 0, &stock.StoreError{Op: "create table", Err: err}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{stock.TableName},
		stock.Columns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{rec.Date, rec.Open, rec.High, rec.Low, rec.Close, rec.AdjClose, rec.Volume}, nil
		}),
	)
	if err != nil {
		return 0, &stock.StoreError{Op: "copy stocks", Err: err}
	}
	if int(copied) != len(records) {
		return 0, &stock.StoreError{Op: "copy stocks", Err: fmt.Errorf("copied %d of %d rows", copied, len(records))}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &stock.StoreError{Op: "commit", Err: err}
	}

	log.Debug().Int64("rows", copied).Msg("stocks table replaced")

	return int(copied), nil
}

// Close closes the pool
func (r *StockRepository) Close() error {
	r.pool.Close()
	return nil
}

var _ stock.Store = (*StockRepository)(nil)
