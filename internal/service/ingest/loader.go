// Package ingest loads daily price files into the stocks table.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

// ReadFile parses path as CSV, or as a workbook when it ends in .xlsx
func ReadFile(path string) ([]stock.StockRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ParseXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &stock.IngestionError{Path: path, Err: err}
	}
	defer f.Close()

	return ParseCSV(f, path)
}

// Loader replaces the stocks table with the contents of a source file
type Loader struct {
	writer stock.Writer
}

// NewLoader creates a Loader writing through w
func NewLoader(w stock.Writer) *Loader {
	return &Loader{writer: w}
}

// Load parses the whole file before touching the store, so a malformed
// source never reaches the transaction. Returns the committed row count.
func (l *Loader) Load(ctx context.Context, path string) (int, error) {
	start := time.Now()

	records, err := ReadFile(path)
	if err != nil {
		return 0, err
	}

	if len(records) > 0 {
		log.Info().
			Str("path", path).
			Int("rows", len(records)).
			Str("first_date", records[0].Date).
			Str("last_date", records[len(records)-1].Date).
			Msg("Source parsed")
	}

	n, err := l.writer.ReplaceAll(ctx, records)
	if err != nil {
		var se *stock.StoreError
		if errors.As(err, &se) {
			return 0, &stock.IngestionError{Path: path, Err: err}
		}
		return 0, fmt.Errorf("replace stocks: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("rows", n).
		Dur("duration", time.Since(start)).
		Msg("Ingestion completed")

	return n, nil
}
