package stock

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("stock record not found")

// IngestionError reports a bad or missing source file, or a malformed row.
// Row is the 1-based data row (0 when the failure is not row specific).
type IngestionError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *IngestionError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("ingest %s: row %d, column %q: %v", e.Path, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("ingest %s: row %d: %v", e.Path, e.Row, e.Err)
	default:
		return fmt.Sprintf("ingest %s: %v", e.Path, e.Err)
	}
}

func (e *IngestionError) Unwrap() error { return e.Err }

// StoreError wraps a connection or query failure in the persistence layer
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStoreError checks if the error came from the persistence layer
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
