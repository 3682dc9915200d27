package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// 5XX
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"
	// 4XX
	ValidationError ErrorCode = "VALIDATION_ERROR"
	NotFound        ErrorCode = "NOT_FOUND"
	BadRequest      ErrorCode = "BAD_REQUEST"
	Forbidden       ErrorCode = "FORBIDDEN"
	Conflict        ErrorCode = "CONFLICT"
)

// Saga failure classes. These travel inside StakeResult / FinalizationResult
// so callers can tell "definitely failed" from "might still complete later".
const (
	GatewayError    ErrorCode = "GATEWAY_ERROR"
	TimeoutError    ErrorCode = "TIMEOUT"
	SettlementError ErrorCode = "SETTLEMENT_ERROR"
)

// Error pairs an HTTP status with an application error code. Services return
// it directly, handlers hand it to the response writer unchanged.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

const UninitializedStatusCode = 0

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError defaults a zero status to 500 and an empty code to INTERNAL_SERVICE_ERROR.
func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	if statusCode == UninitializedStatusCode {
		statusCode = http.StatusInternalServerError
	}
	if errorCode == "" {
		errorCode = InternalServiceError
	}
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}
