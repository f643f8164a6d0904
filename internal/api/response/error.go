package response

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ioane-gh/PLTR-Stock/internal/api/middleware"
)

// Error labels carried in the envelope's error field
const (
	ErrNotFound         = "Not found"
	ErrInternalServer   = "Internal server error"
	ErrMethodNotAllowed = "Method not allowed"
)

// Error sends a failure envelope
func Error(w http.ResponseWriter, r *http.Request, statusCode int, label, message string) {
	log.Debug().
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("error", label).
		Str("message", message).
		Int("status", statusCode).
		Msg("API error response")

	JSON(w, statusCode, Envelope{
		Success: false,
		Error:   label,
		Message: message,
	})
}

// NotFound sends a 404 Not Found error
func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusNotFound, ErrNotFound, message)
}

// MethodNotAllowed sends a 405 error
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed, "Method "+r.Method+" is not supported for "+r.URL.Path)
}

// InternalError logs err and sends a 500 with a generic message.
// The cause is never written to the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Internal server error")

	JSON(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   ErrInternalServer,
		Message: message,
	})
}
