package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/services/auth"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", model.NewValidationError("taxId", "invalid taxId"), http.StatusBadRequest, CodeInvalidRequest},
		{"duplicate", &model.DuplicateReservationError{}, http.StatusConflict, CodeDuplicateActiveReservation},
		{"capacity", model.ErrCapacityExceeded, http.StatusUnprocessableEntity, CodeCapacityExceeded},
		{"wrapped capacity", fmt.Errorf("create: %w", model.ErrCapacityExceeded), http.StatusUnprocessableEntity, CodeCapacityExceeded},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, CodeMissingToken},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, CodeInvalidToken},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{"rate limited", NewRateLimitedError(), http.StatusTooManyRequests, CodeRateLimited},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("open /var/data/reservations.json: permission denied"))

	assert.NotContains(t, rr.Body.String(), "reservations.json")
	assert.True(t, IsInternal(errors.New("x")))
	assert.False(t, IsInternal(model.ErrCapacityExceeded))
}

func TestWriteErrorIncludesFieldErrors(t *testing.T) {
	verr := model.NewValidationError("name", "name must be between 3 and 100 characters")
	verr.Add("phone", "phone must have 10 or 11 digits")

	rr := httptest.NewRecorder()
	WriteError(rr, verr)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "name", body.Errors[0].Field)
	assert.Equal(t, "phone", body.Errors[1].Field)
}

func TestWriteErrorIncludesConflictingDate(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, &model.DuplicateReservationError{Existing: &model.Reservation{Date: "2024-01-15"}})

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "15/01/2024", body.ReservationDate)
}
