package handlers

import (
	"encoding/json"
	"net/http"
)

// successResponse is the body for successful form submissions
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse is the body for rejected requests. Data carries field-level
// validation messages when present.
type errorResponse struct {
	StatusMessage string   `json:"statusMessage"`
	Data          []string `json:"data,omitempty"`
}

// respondSuccess sends a success JSON response
func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondOutcome sends a non-error outcome with a distinguishing code, such as
// an idempotent "already subscribed" result. The HTTP status is 200; only the
// success flag and code differ from a plain success.
func respondOutcome(w http.ResponseWriter, code, message string) {
	writeJSON(w, http.StatusOK, successResponse{
		Success: false,
		Message: message,
		Code:    code,
	})
}

// respondError sends an error JSON response. Messages are fixed strings chosen
// by the handlers; upstream error details are never forwarded to the client.
func respondError(w http.ResponseWriter, status int, statusMessage string, fieldErrors []string) {
	writeJSON(w, status, errorResponse{
		StatusMessage: statusMessage,
		Data:          fieldErrors,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
