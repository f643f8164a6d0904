// Package database selects the stock store backend from configuration.
package database

import (
	"context"
	"fmt"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
	"github.com/ioane-gh/PLTR-Stock/internal/infra/database/postgres"
	"github.com/ioane-gh/PLTR-Stock/internal/infra/database/sqlite"
	"github.com/ioane-gh/PLTR-Stock/internal/pkg/config"
)

// Open returns the stock store configured by cfg.Database.Driver
func Open(ctx context.Context, cfg *config.Config) (stock.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.Path, int(cfg.Database.MaxConns))
		if err != nil {
			return nil, err
		}
		return sqlite.NewStockRepository(db), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database, cfg.Logging)
		if err != nil {
			return nil, err
		}
		return postgres.NewStockRepository(pool), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
