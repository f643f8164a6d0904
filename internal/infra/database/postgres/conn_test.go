package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
	"github.com/ioane-gh/PLTR-Stock/internal/infra/database/postgres"
	"github.com/ioane-gh/PLTR-Stock/internal/pkg/config"
)

func newPool(t *testing.T) *postgres.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Integration test - requires PostgreSQL (set TEST_DATABASE_URL)")
	}

	pool, err := postgres.NewPool(context.Background(), config.DatabaseConfig{
		URL:      url,
		MaxConns: 4,
		MinConns: 1,
	}, config.LoggingConfig{Level: "info"})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPool_Health(t *testing.T) {
	pool := newPool(t)
	assert.NoError(t, pool.Health(context.Background()))
}

func TestStockRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewStockRepository(newPool(t))

	records := []stock.StockRecord{
		{Date: "2020-10-01", Open: 9.69, High: 10.1, Low: 9.23, Close: 9.46, AdjClose: 9.46, Volume: 124297600},
		{Date: "2020-09-30", Open: 10.0, High: 11.41, Low: 9.11, Close: 9.5, AdjClose: 9.5, Volume: 338584400},
	}

	n, err := repo.ReplaceAll(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// second run replaces, does not append
	_, err = repo.ReplaceAll(ctx, records)
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, records[1], all[0])

	rec, err := repo.GetByDate(ctx, "2020-09-30")
	require.NoError(t, err)
	assert.Equal(t, int64(338584400), rec.Volume)

	_, err = repo.GetByDate(ctx, "2020-09-29")
	assert.ErrorIs(t, err, stock.ErrNotFound)

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2020-10-01", latest.Date)
}
