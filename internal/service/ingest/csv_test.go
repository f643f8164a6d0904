package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

const header = "Date,Open,High,Low,Close,Adj Close,Volume\n"

func TestParseCSV_ConcreteRow(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(header+"2020-09-30,10.0,11.41,9.11,9.5,9.5,338584400\n"), "pltr.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, stock.StockRecord{
		Date:     "2020-09-30",
		Open:     10.0,
		High:     11.41,
		Low:      9.11,
		Close:    9.5,
		AdjClose: 9.5,
		Volume:   338584400,
	}, records[0])
}

func TestParseCSV_ColumnOrderAndCase(t *testing.T) {
	src := "volume, adj close ,DATE,close,low,high,open,extra\n" +
		"124297600,9.46,10/01/2020,9.46,9.23,10.1,9.69,x\n" +
		"\n" +
		"55018300.0,9.2,2020-10-02 00:00:00,9.2,8.94,9.28,9.06,y\n"

	records, err := ParseCSV(strings.NewReader(src), "reordered.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2020-10-01", records[0].Date)
	assert.Equal(t, 9.69, records[0].Open)
	assert.Equal(t, int64(124297600), records[0].Volume)
	assert.Equal(t, "2020-10-02", records[1].Date)
	assert.Equal(t, int64(55018300), records[1].Volume)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(header), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		row    int
		column string
	}{
		{name: "empty file", src: ""},
		{name: "missing column", src: "Date,Open,High,Low,Close,Volume\n", column: "adj_close"},
		{name: "short row", src: header + "2020-09-30,10.0,11.41\n", row: 1},
		{name: "long row", src: header + "2020-09-30,10.0,11.41,9.11,9.5,9.5,338584400,1\n", row: 1},
		{name: "bad date", src: header + "2020-09-30,10,11,9,9,9,1\nyesterday,10,11,9,9,9,1\n", row: 2, column: "date"},
		{name: "bad price", src: header + "2020-09-30,ten,11,9,9,9,1\n", row: 1, column: "open"},
		{name: "nan price", src: header + "2020-09-30,10,11,NaN,9,9,1\n", row: 1, column: "low"},
		{name: "fractional volume", src: header + "2020-09-30,10,11,9,9,9,1.5\n", row: 1, column: "volume"},
		{name: "duplicate date", src: header + "2020-09-30,10,11,9,9,9,1\n2020-09-30,10,11,9,9,9,1\n", row: 2, column: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.src), "bad.csv")
			require.Error(t, err)

			var ie *stock.IngestionError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "bad.csv", ie.Path)
			assert.Equal(t, tt.row, ie.Row)
			assert.Equal(t, tt.column, ie.Column)
		})
	}
}

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "adj_close", normalizeColumn("Adj Close"))
	assert.Equal(t, "adj_close", normalizeColumn("  adj   close "))
	assert.Equal(t, "date", normalizeColumn("\ufeffDate"))
}
