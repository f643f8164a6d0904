package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ioane-gh/PLTR-Stock/internal/api/handlers"
	"github.com/ioane-gh/PLTR-Stock/internal/api/middleware"
	"github.com/ioane-gh/PLTR-Stock/internal/api/response"
	"github.com/ioane-gh/PLTR-Stock/internal/api/routes"
)

// Config holds router configuration
type Config struct {
	StockHandler   *handlers.StockHandler
	HealthHandler  *handlers.HealthHandler
	AllowedOrigins []string
	AccessLogger   *zerolog.Logger
}

// NewRouter creates a new HTTP router
func NewRouter(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: cfg.AccessLogger,
		SkipPaths:    []string{"/metrics"},
	}))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		routes.RegisterHealthRoutes(r, cfg.HealthHandler)
		routes.RegisterStocksRoutes(r, cfg.StockHandler)
	})

	return r
}
