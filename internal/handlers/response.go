package handlers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every endpoint responds with.
// swagger:model APIResponse
type APIResponse struct {
	// Mirrored HTTP status code
	StatusCode int `json:"statusCode"`

	// Operation payload, omitted on errors
	Data any `json:"data,omitempty"`

	// Human-readable outcome
	Message string `json:"message"`

	// Whether the operation succeeded
	Success bool `json:"success"`
}

// writeJSON writes a success envelope with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// writeError writes an error envelope with the given status code.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(APIResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
	})
}
