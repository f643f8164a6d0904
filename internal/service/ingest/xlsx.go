package ingest

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

// ParseXLSX reads the first sheet of a workbook laid out like the CSV input
func ParseXLSX(path string) ([]stock.StockRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &stock.IngestionError{Path: path, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &stock.IngestionError{Path: path, Err: errEmptySource}
	}

	// raw values keep numbers unformatted and dates as serials
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &stock.IngestionError{Path: path, Err: fmt.Errorf("read sheet %s: %w", sheets[0], err)}
	}
	if len(rows) == 0 {
		return nil, &stock.IngestionError{Path: path, Err: errEmptySource}
	}

	header, data := rows[0], skipBlankRows(rows[1:])

	idx, err := columnIndex(path, header)
	if err != nil {
		return nil, err
	}
	// GetRows drops trailing empty cells
	data = padRows(data, len(header))
	dateCol := idx["date"]
	for _, row := range data {
		row[dateCol] = serialToDate(row[dateCol])
	}

	return toRecords(path, header, data)
}

// serialToDate converts an Excel date serial ("44104") to YYYY-MM-DD,
// leaving anything else untouched
func serialToDate(v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format(stock.DateLayout)
}

func skipBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if cell != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func padRows(rows [][]string, width int) [][]string {
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}
