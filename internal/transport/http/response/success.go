package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the shape of every response body. Payload is omitted when a
// call carries no data.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
// It sets Content-Type to application/json; charset=utf-8 if not already set.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with {"success": true, ...}.
func OK(w http.ResponseWriter, message string, payload any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Payload: payload})
}
