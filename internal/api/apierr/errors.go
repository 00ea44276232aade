package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/services/auth"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Success         bool               `json:"success"`
	Code            string             `json:"code"`
	Message         string             `json:"message"`
	Errors          []model.FieldError `json:"errors,omitempty"`
	ReservationDate string             `json:"reservationDate,omitempty"`
}

// Common error codes
const (
	CodeInvalidRequest             = "INVALID_REQUEST"
	CodeDuplicateActiveReservation = "DUPLICATE_ACTIVE_RESERVATION"
	CodeCapacityExceeded           = "CAPACITY_EXCEEDED"
	CodeMissingToken               = "MISSING_TOKEN"
	CodeInvalidToken               = "INVALID_TOKEN"
	CodeInvalidCredentials         = "INVALID_CREDENTIALS"
	CodeForbidden                  = "FORBIDDEN"
	CodeNotFound                   = "NOT_FOUND"
	CodeMethodNotAllowed           = "METHOD_NOT_ALLOWED"
	CodeRateLimited                = "RATE_LIMITED"
	CodeInternalError              = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an error body
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Message
}

func newHTTPError(status int, code, message string) *httpError {
	return &httpError{status: status, body: ErrorResponse{Code: code, Message: message}}
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// IsInternal reports whether err maps to a 500 response
func IsInternal(err error) bool {
	return toHTTPError(err).status == http.StatusInternalServerError
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		e := newHTTPError(http.StatusBadRequest, CodeInvalidRequest, "invalid data")
		e.body.Errors = verr.Errors
		return e
	}

	var dup *model.DuplicateReservationError
	if errors.As(err, &dup) {
		e := newHTTPError(http.StatusConflict, CodeDuplicateActiveReservation,
			"there is already an active reservation for this cpf")
		if dup.Existing != nil {
			e.body.ReservationDate = calendar.Format(dup.Existing.Date)
		}
		return e
	}

	switch {
	case errors.Is(err, model.ErrDuplicateActiveReservation):
		return newHTTPError(http.StatusConflict, CodeDuplicateActiveReservation,
			"there is already an active reservation for this cpf")
	case errors.Is(err, model.ErrCapacityExceeded):
		return newHTTPError(http.StatusUnprocessableEntity, CodeCapacityExceeded,
			"reservation limit reached for this date, please choose another date")

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return newHTTPError(http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials")
	case errors.Is(err, auth.ErrMissingToken):
		return newHTTPError(http.StatusUnauthorized, CodeMissingToken, "access token not provided")
	case errors.Is(err, auth.ErrInvalidToken):
		return newHTTPError(http.StatusUnauthorized, CodeInvalidToken, "invalid or expired token")
	case errors.Is(err, auth.ErrForbidden):
		return newHTTPError(http.StatusForbidden, CodeForbidden, "access denied")

	default:
		return newHTTPError(http.StatusInternalServerError, CodeInternalError, "internal server error")
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, CodeInvalidRequest, message)
}

// NewNotFoundError creates a not found error
func NewNotFoundError() error {
	return newHTTPError(http.StatusNotFound, CodeNotFound, "route not found")
}

// NewMethodNotAllowedError creates a method not allowed error
func NewMethodNotAllowedError() error {
	return newHTTPError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
}

// NewRateLimitedError creates a too many requests error
func NewRateLimitedError() error {
	return newHTTPError(http.StatusTooManyRequests, CodeRateLimited, "too many login attempts, try again later")
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return newHTTPError(http.StatusInternalServerError, CodeInternalError, "internal server error")
}
