package handler

// Response helpers shared by all handlers. Every error leaving the API has
// the same single-field shape:
//
//	{"error": "Recipe not found"}
//
// and the status code comes from the error's sentinel, so services stay
// ignorant of HTTP.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/recipe-tracker/internal/apperror"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends data with the given status. Headers and status must go out
// before the first body byte, hence the ordering here.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status and body.
//
// errors.Is walks the wrap chain, so a service error like
// "service/recipe: updating 7: Recipe not found" still matches ErrNotFound.
// Anything outside the taxonomy (store I/O, encoding bugs) becomes a generic
// 500 — internal details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrConflict),
		errors.Is(err, apperror.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	}

	var appErr *apperror.AppError
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Message
	}

	writeJSON(w, status, ErrorResponse{Error: message})
}
