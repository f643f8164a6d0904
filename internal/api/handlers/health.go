package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ioane-gh/PLTR-Stock/internal/api/middleware"
	"github.com/ioane-gh/PLTR-Stock/internal/api/response"
)

// TimestampLayout is ISO 8601 in UTC with microseconds
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

// SimpleHealthResponse represents a simple health check response
type SimpleHealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse represents a readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// Health returns simple liveness check without touching the store
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, SimpleHealthResponse{
		Status:    "healthy",
		Timestamp: h.timestamp(),
	})
}

// Ready returns readiness check with dependency checks
// GET /api/health/ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{
		Status:    "ready",
		Timestamp: h.timestamp(),
		Checks:    map[string]string{"database": "ok"},
	}
	statusCode := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		log.Warn().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("Readiness check failed")

		resp.Status = "not_ready"
		resp.Checks["database"] = "error"
		resp.Message = "Database connection failed"
		statusCode = http.StatusServiceUnavailable
	}

	response.JSON(w, statusCode, resp)
}

func (h *HealthHandler) timestamp() string {
	return h.now().UTC().Format(TimestampLayout)
}
