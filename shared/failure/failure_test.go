package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"rentdesk/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("invalid date")), code: http.StatusBadRequest, message: "invalid date"},
		{name: "bad request from string", err: failure.BadRequestFromString("check-out must be after check-in"), code: http.StatusBadRequest, message: "check-out must be after check-in"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "not found", err: failure.NotFound("unit not found"), code: http.StatusNotFound, message: "unit not found"},
		{name: "conflict", err: failure.Conflict("unit is already booked"), code: http.StatusConflict, message: "unit is already booked"},
		{name: "bad gateway", err: failure.BadGateway("calendar host unreachable"), code: http.StatusBadGateway, message: "calendar host unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			assert.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{name: "failure", input: failure.NotFound("booking not found"), expected: http.StatusNotFound},
		{name: "wrapped failure", input: fmt.Errorf("create booking: %w", failure.Conflict("taken")), expected: http.StatusConflict},
		{name: "predefined", input: failure.InvalidDateRange, expected: http.StatusBadRequest},
		{name: "plain error", input: errors.New("boom"), expected: http.StatusInternalServerError},
		{name: "nil", input: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", failure.Conflict("taken"))

	assert.True(t, failure.Is(err, http.StatusConflict))
	assert.False(t, failure.Is(err, http.StatusNotFound))
	assert.False(t, failure.Is(errors.New("plain"), http.StatusConflict))
}
