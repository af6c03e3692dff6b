// Package httputil provides shared helpers for writing JSON responses.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes data as a JSON response with the given status code.
// HTML characters are not escaped so that echoed values such as URLs keep
// their literal form on the wire.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

// WriteEmpty writes a response without a body.
func WriteEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Error any `json:"error"`
}

// WriteError writes err wrapped in an ErrorEnvelope. err may be a plain
// message or a structured value that marshals to JSON.
func WriteError(w http.ResponseWriter, status int, err any) error {
	return WriteJSON(w, status, ErrorEnvelope{Error: err})
}
