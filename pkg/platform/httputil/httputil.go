package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error envelope shared by all endpoints.
// Code is omitted for errors that carry only a message (405).
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"error,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message, Code: code})
}

// MethodNotAllowed writes the 405 envelope and advertises the allowed methods.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	WriteError(w, http.StatusMethodNotAllowed, "", "Method not allowed")
}
