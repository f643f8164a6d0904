package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

// ParseCSV reads a header row followed by daily price rows. source names the
// input in errors.
func ParseCSV(r io.Reader, source string) ([]stock.StockRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // column count is checked per row against the header
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &stock.IngestionError{Path: source, Err: errEmptySource}
		}
		return nil, &stock.IngestionError{Path: source, Err: fmt.Errorf("read header: %w", err)}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &stock.IngestionError{Path: source, Row: len(rows) + 1, Err: err}
		}
		rows = append(rows, row)
	}

	return toRecords(source, header, rows)
}
