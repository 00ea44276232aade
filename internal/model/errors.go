package model

import (
	"errors"
	"strings"
)

// Common errors used across the application
var (
	// Reservation errors
	ErrDuplicateActiveReservation = errors.New("cpf already has an active reservation")
	ErrCapacityExceeded           = errors.New("reservation limit reached for this date")

	// Admin errors
	ErrAdminNotFound = errors.New("admin not found")
)

// FieldError describes a single invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when request input is malformed
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field error
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed validation
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Error implements error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// DuplicateReservationError carries the reservation that blocks a new booking
type DuplicateReservationError struct {
	Existing *Reservation
}

// Error implements error interface
func (e *DuplicateReservationError) Error() string {
	return ErrDuplicateActiveReservation.Error()
}

// Unwrap allows errors.Is(err, ErrDuplicateActiveReservation)
func (e *DuplicateReservationError) Unwrap() error {
	return ErrDuplicateActiveReservation
}
