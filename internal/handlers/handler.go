package handlers

import (
	"encoding/json"
	"net/http"

	"gitlab.com/stark-bootcamp.net/internal/handlers/response"
)

// Guard wraps a route handler, e.g. with authentication or rate limiting.
type Guard func(http.Handler) http.Handler

// Guarded applies guards outermost first.
func Guarded(fn http.HandlerFunc, guards ...Guard) http.Handler {
	var h http.Handler = fn
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	return h
}

// DecodeJSON reads the request body into v, writing a 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.WriteError(w, response.Detail(http.StatusBadRequest, "Invalid request body"))
		return false
	}
	return true
}
