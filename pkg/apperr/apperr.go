// Package apperr enumerates the application's error kinds so callers can
// branch with errors.Is / errors.As instead of string matching.
//
// The kinds are:
//
//	ValidationError        — an entity or input field violated an invariant
//	NotFoundError          — an update/delete matched zero rows
//	ConflictError          — a uniqueness rule was violated (duplicate email)
//	InsufficientStockError — an order line asked for more than is in stock
//	ErrOffline             — the database manager has degraded to offline
//
// Unwrapped driver errors are connectivity failures: logged, wrapped with
// %w, and rethrown by the repositories.
package apperr

import (
	"errors"
	"fmt"
)

// ErrOffline is returned by repository calls while the database manager is
// in its degraded offline state.
var ErrOffline = errors.New("database is offline")

// ValidationError reports a field that violated a domain invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports that an operation targeted a row that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity and id.
func NotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrEmailTaken is the conflict raised when registering a customer with an
// email address that already exists.
var ErrEmailTaken = &ConflictError{Message: "email already exists"}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// InsufficientStockError names the product whose conditional stock decrement
// matched zero rows during order placement.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (id %d, requested %d, available %d)",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is (or wraps) an
// InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}
