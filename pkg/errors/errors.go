package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeTransport    = "TRANSPORT_ERROR"
	CodeAggregate    = "AGGREGATE_ERROR"
	CodeEmptyInput   = "EMPTY_INPUT"
	CodeConflict     = "CONFLICT"
	CodeBadRequest   = "BAD_REQUEST"
	CodeInternal     = "INTERNAL_ERROR"
	CodeRateLimited  = "TOO_MANY_REQUESTS"
)

// AppError carries an error kind (Code) alongside the flat message shown to
// users. Message is always safe to surface verbatim.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Validation reports caller-supplied data that violates a documented constraint.
func Validation(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// InvalidInput reports a missing identifier or argument.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

// Transport wraps a failure reported by the backend. The backend's own
// message wins over fallback when it has one.
func Transport(fallback string, err error) *AppError {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &AppError{
		Code:    CodeTransport,
		Message: message,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func Aggregate(failed int, first string) *AppError {
	return &AppError{
		Code:    CodeAggregate,
		Message: fmt.Sprintf("%d file(s) failed to upload: %s", failed, first),
		Status:  http.StatusUnprocessableEntity,
	}
}

func EmptyInput(message string) *AppError {
	return &AppError{
		Code:    CodeEmptyInput,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Message returns the user-facing text of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// From converts any error into an AppError, keeping an existing one intact.
func From(err error, fallback string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Transport(fallback, err)
}
