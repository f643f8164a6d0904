package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/ioane-gh/PLTR-Stock/internal/api/handlers"
)

// RegisterHealthRoutes registers liveness and readiness routes under /api/health
func RegisterHealthRoutes(r chi.Router, healthHandler *handlers.HealthHandler) {
	r.Get("/health", healthHandler.Health)
	r.Get("/health/ready", healthHandler.Ready)
}
