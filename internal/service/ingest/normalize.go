package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

var (
	errEmptySource   = errors.New("source has no header row")
	errMissingColumn = errors.New("missing required column")
)

// dateLayouts are the accepted Date spellings, tried in order
var dateLayouts = []string{
	stock.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// normalizeColumn maps a header cell such as "Adj Close" to "adj_close"
func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// columnIndex resolves each required column to its position in header
func columnIndex(source string, header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		col := normalizeColumn(h)
		if _, dup := idx[col]; !dup {
			idx[col] = i
		}
	}

	for _, col := range stock.Columns {
		if _, ok := idx[col]; !ok {
			return nil, &stock.IngestionError{Path: source, Column: col, Err: errMissingColumn}
		}
	}

	return idx, nil
}

// toRecords coerces raw rows into records. Row numbers in errors are
// 1-based data rows (the header is not counted).
func toRecords(source string, header []string, rows [][]string) ([]stock.StockRecord, error) {
	idx, err := columnIndex(source, header)
	if err != nil {
		return nil, err
	}

	records := make([]stock.StockRecord, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		rowNum := i + 1
		if len(row) != len(header) {
			return nil, &stock.IngestionError{
				Path: source,
				Row:  rowNum,
				Err:  fmt.Errorf("expected %d columns, got %d", len(header), len(row)),
			}
		}

		rec, err := toRecord(row, idx)
		if err != nil {
			var fe *fieldError
			if errors.As(err, &fe) {
				return nil, &stock.IngestionError{Path: source, Row: rowNum, Column: fe.column, Err: fe.err}
			}
			return nil, &stock.IngestionError{Path: source, Row: rowNum, Err: err}
		}

		if first, dup := seen[rec.Date]; dup {
			return nil, &stock.IngestionError{
				Path:   source,
				Row:    rowNum,
				Column: "date",
				Err:    fmt.Errorf("duplicate date %s (first at row %d)", rec.Date, first),
			}
		}
		seen[rec.Date] = rowNum

		records = append(records, rec)
	}

	return records, nil
}

type fieldError struct {
	column string
	err    error
}

func (e *fieldError) Error() string { return fmt.Sprintf("%s: %v", e.column, e.err) }

func toRecord(row []string, idx map[string]int) (stock.StockRecord, error) {
	var rec stock.StockRecord
	var err error

	if rec.Date, err = parseDate(row[idx["date"]]); err != nil {
		return rec, &fieldError{column: "date", err: err}
	}

	prices := []struct {
		col string
		dst *float64
	}{
		{"open", &rec.Open},
		{"high", &rec.High},
		{"low", &rec.Low},
		{"close", &rec.Close},
		{"adj_close", &rec.AdjClose},
	}
	for _, p := range prices {
		if *p.dst, err = parsePrice(row[idx[p.col]]); err != nil {
			return rec, &fieldError{column: p.col, err: err}
		}
	}

	if rec.Volume, err = parseVolume(row[idx["volume"]]); err != nil {
		return rec, &fieldError{column: "volume", err: err}
	}

	return rec, nil
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(stock.DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", s)
}

func parsePrice(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// parseVolume accepts integers and integral floats ("338584400.0")
func parseVolume(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int64(f), nil
}
