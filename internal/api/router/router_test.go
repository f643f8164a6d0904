package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioane-gh/PLTR-Stock/internal/api/handlers"
	"github.com/ioane-gh/PLTR-Stock/internal/api/router"
	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
	"github.com/ioane-gh/PLTR-Stock/internal/infra/database/sqlite"
	"github.com/ioane-gh/PLTR-Stock/internal/service/ingest"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

// newServer ingests csv into a fresh SQLite file and serves the full router
func newServer(t *testing.T, csv string) (*httptest.Server, *sqlite.StockRepository) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	db, err := sqlite.Open(ctx, filepath.Join(dir, "pltr.db"), 4)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := sqlite.NewStockRepository(db)

	if csv != "" {
		src := filepath.Join(dir, "pltr.csv")
		require.NoError(t, os.WriteFile(src, []byte(csv), 0o644))
		_, err = ingest.NewLoader(repo).Load(ctx, src)
		require.NoError(t, err)
	}

	srv := httptest.NewServer(router.NewRouter(&router.Config{
		StockHandler:  handlers.NewStockHandler(repo),
		HealthHandler: handlers.NewHealthHandler(repo),
	}))
	t.Cleanup(srv.Close)

	return srv, repo
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, envelope) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestRouter_SingleRowScenario(t *testing.T) {
	srv, _ := newServer(t, "Date,Open,High,Low,Close,Adj Close,Volume\n2020-09-30,10.0,11.41,9.11,9.5,9.5,338584400\n")

	want := `{"date":"2020-09-30","open":10.0,"high":11.41,"low":9.11,"close":9.5,"adj_close":9.5,"volume":338584400}`

	resp, body := get(t, srv, "/api/stocks/date/2020-09-30")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.True(t, body.Success)
	assert.JSONEq(t, want, string(body.Data))

	resp, body = get(t, srv, "/api/stocks/latest")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, want, string(body.Data))

	resp, body = get(t, srv, "/api/stocks/date/2020-09-29")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestRouter_ListMatchesTable(t *testing.T) {
	// rows deliberately out of order: latest and list must not rely on file order
	srv, repo := newServer(t, `Date,Open,High,Low,Close,Adj Close,Volume
2021-01-04,23.91,24.46,21.98,22.36,22.36,78497000
2020-09-30,10.0,11.41,9.11,9.5,9.5,338584400
2020-12-31,23.28,24.0,22.68,23.62,23.62,50464500
2020-10-01,9.69,10.1,9.23,9.46,9.46,124297600
`)

	resp, body := get(t, srv, "/api/stocks")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data []stock.StockRecord
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotNil(t, body.Count)
	assert.Equal(t, len(data), *body.Count)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, all, data)
	assert.Equal(t, []string{"2020-09-30", "2020-10-01", "2020-12-31", "2021-01-04"},
		[]string{data[0].Date, data[1].Date, data[2].Date, data[3].Date})

	// every listed date is retrievable and echoes its own date
	for _, rec := range data {
		resp, body := get(t, srv, "/api/stocks/date/"+rec.Date)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got stock.StockRecord
		require.NoError(t, json.Unmarshal(body.Data, &got))
		assert.Equal(t, rec, got)
	}

	_, body = get(t, srv, "/api/stocks/latest")
	var latest stock.StockRecord
	require.NoError(t, json.Unmarshal(body.Data, &latest))
	assert.Equal(t, "2021-01-04", latest.Date)
}

func TestRouter_EmptyTable(t *testing.T) {
	srv, _ := newServer(t, "Date,Open,High,Low,Close,Adj Close,Volume\n")

	resp, body := get(t, srv, "/api/stocks")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.Count)
	assert.Equal(t, 0, *body.Count)
	assert.JSONEq(t, `[]`, string(body.Data))

	resp, body = get(t, srv, "/api/stocks/latest")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No stock data found", body.Message)
}

func TestRouter_NotIngestedIsInternalError(t *testing.T) {
	srv, _ := newServer(t, "")

	resp, body := get(t, srv, "/api/stocks")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, body.Message, "no such table")
}

func TestRouter_HealthIndependentOfStore(t *testing.T) {
	srv, repo := newServer(t, "")
	require.NoError(t, repo.Close())

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health handlers.SimpleHealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)

	ready, err := http.Get(srv.URL + "/api/health/ready")
	require.NoError(t, err)
	ready.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, ready.StatusCode)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	srv, _ := newServer(t, "")

	resp, body := get(t, srv, "/api/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body.Error)

	post, err := http.Post(srv.URL+"/api/stocks", "application/json", nil)
	require.NoError(t, err)
	post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

func TestRouter_Metrics(t *testing.T) {
	srv, _ := newServer(t, "")
	get(t, srv, "/api/stocks/date/2020-09-30")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
