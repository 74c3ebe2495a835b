// Package httputil centralizes JSON encoding and domain error translation for
// HTTP handlers so every endpoint produces the same envelope.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "devicegate/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors omit the description so implementation details never reach
// callers; client errors include it to aid integration.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)

	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		if msg := dErrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}

	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

// Decode reads the request body into dst, returning a bad_request domain
// error on malformed JSON. Unknown fields are tolerated.
func Decode[T any](r *http.Request) (T, error) {
	var dst T
	if err := json.NewDecoder(r.Body).Decode(&dst); err != nil {
		return dst, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return dst, nil
}
