package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the client caused, carried up to the HTTP layer with its status code.
// Anything that is not a Failure is answered with 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidPageParam  = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	InvalidDateRange  = &Failure{Code: http.StatusBadRequest, Message: "end date must not be before start date"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest converts err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// InternalError converts err into a 500. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

// NotFound reports a missing unit, group, booking, contact, override or campaign.
func NotFound(message string) error {
	return newFailure(http.StatusNotFound, message)
}

// Conflict reports a write that collides with existing state, such as overlapping stays.
func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// BadGateway reports an upstream the request depends on, such as an external calendar host, failing.
func BadGateway(message string) error {
	return newFailure(http.StatusBadGateway, message)
}

// GetCode returns the status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries a Failure with the given code.
func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
