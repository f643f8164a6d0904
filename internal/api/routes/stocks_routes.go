package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ioane-gh/PLTR-Stock/internal/api/handlers"
)

// RegisterStocksRoutes registers all stock-related routes under /api/stocks
func RegisterStocksRoutes(r chi.Router, stockHandler *handlers.StockHandler) {
	r.Route("/stocks", func(r chi.Router) {
		// GET /api/stocks - List all records by date
		r.Get("/", stockHandler.List)

		// GET /api/stocks/latest - Most recent trading day
		r.Get("/latest", stockHandler.GetLatest)

		// GET /api/stocks/date/{date} - Single trading day
		r.Get("/date/{date}", stockHandler.GetByDate)
	})
}
