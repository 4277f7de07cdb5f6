package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"mobility-network-backend/models"
)

// WriteSuccessResponse writes a successful JSON response in the generic
// envelope.
func WriteSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	response := models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	WriteJSON(w, http.StatusOK, response)
}

// WriteErrorResponse writes an error JSON response.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	response := models.APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	WriteJSON(w, statusCode, response)
}

// WriteJSON writes an arbitrary JSON payload with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().
			Err(err).
			Int("status_code", statusCode).
			Msg("Failed to encode JSON response")
	}
}
