package stock

import "context"

// Reader defines read-only access used by the query API
type Reader interface {
	// List returns every record ordered ascending by date
	List(ctx context.Context) ([]StockRecord, error)

	// GetByDate returns the record whose date equals the given string
	GetByDate(ctx context.Context, date string) (*StockRecord, error)

	// GetLatest returns the record with the maximum date
	GetLatest(ctx context.Context) (*StockRecord, error)

	// Ping verifies the store is reachable
	Ping(ctx context.Context) error
}

// Writer defines the bulk replace used by the ingestion loader
type Writer interface {
	// ReplaceAll drops and recreates the table, then inserts records in one
	// transaction. Returns the number of rows committed.
	ReplaceAll(ctx context.Context, records []StockRecord) (int, error)
}

// Store is a full persistence backend
type Store interface {
	Reader
	Writer
	Close() error
}
