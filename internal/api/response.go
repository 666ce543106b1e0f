package api

import (
	"encoding/json"
	"errors"
	"net/http"

	kanerr "github.com/amterp/swatch/internal/errors"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
// Anything unrecognised, including failed writes to the store, is a 500.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var notFound *kanerr.NotFoundError
	var validation *kanerr.ValidationError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.Is(err, kanerr.ErrStoreClosed):
		status = http.StatusServiceUnavailable
	}

	JSON(w, status, map[string]string{"error": err.Error()})
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
