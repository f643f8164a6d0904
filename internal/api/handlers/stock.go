package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ioane-gh/PLTR-Stock/internal/api/response"
	"github.com/ioane-gh/PLTR-Stock/internal/domain/stock"
)

const storeFailureMessage = "Failed to retrieve stock data"

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	stockRepo stock.Reader
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockRepo stock.Reader) *StockHandler {
	return &StockHandler{stockRepo: stockRepo}
}

// List handles GET /api/stocks
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.stockRepo.List(r.Context())
	if err != nil {
		response.InternalError(w, r, err, storeFailureMessage)
		return
	}

	response.SuccessList(w, records, len(records),
		fmt.Sprintf("Successfully retrieved %d stock records", len(records)))
}

// GetByDate handles GET /api/stocks/date/{date}
// The path value is only ever a bound query parameter; malformed dates
// simply match nothing.
func (h *StockHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	rec, err := h.stockRepo.GetByDate(r.Context(), date)
	if err != nil {
		if stock.IsNotFound(err) {
			response.NotFound(w, r, fmt.Sprintf("No stock data found for date %s", date))
			return
		}
		response.InternalError(w, r, err, storeFailureMessage)
		return
	}

	response.Success(w, rec, fmt.Sprintf("Successfully retrieved stock data for %s", date))
}

// GetLatest handles GET /api/stocks/latest
func (h *StockHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.stockRepo.GetLatest(r.Context())
	if err != nil {
		if stock.IsNotFound(err) {
			response.NotFound(w, r, "No stock data found")
			return
		}
		response.InternalError(w, r, err, storeFailureMessage)
		return
	}

	response.Success(w, rec, fmt.Sprintf("Successfully retrieved latest stock data (%s)", rec.Date))
}
