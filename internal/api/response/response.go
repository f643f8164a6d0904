package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the JSON wrapper returned by every data endpoint
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Count   *int   `json:"count,omitempty"`
}

// JSON writes v with the given status code
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Int("status", statusCode).Msg("Failed to encode response")
	}
}

// Success sends a 200 response with a single payload
func Success(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SuccessList sends a 200 response with list data and count
func SuccessList(w http.ResponseWriter, data any, count int, message string) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: message,
		Count:   &count,
	})
}
