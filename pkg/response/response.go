// Package response writes the JSON envelope every API handler uses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"apachemart/pkg/apperr"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// FromError maps a repository or service error to its HTTP status:
//
//	ValidationError        -> 422
//	NotFoundError          -> 404
//	ConflictError          -> 409
//	InsufficientStockError -> 409
//	ErrOffline             -> 503
//	anything else          -> 500
func FromError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		var ve *apperr.ValidationError
		errors.As(err, &ve)
		ValidationError(w, map[string]string{ve.Field: ve.Message})
	case apperr.IsNotFound(err):
		Error(w, http.StatusNotFound, err.Error())
	case apperr.IsConflict(err), apperr.IsInsufficientStock(err):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrOffline):
		Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
