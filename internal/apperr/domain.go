package apperr

import (
	"fmt"
	"net/http"
)

// Domain-specific error codes for the demo HTTP server's students endpoints.

// Student errors
var (
	ErrStudentNotFound  = &AppError{Code: "STUDENT_NOT_FOUND", Message: "Student not found", HTTPStatus: http.StatusNotFound}
	ErrStudentNameEmpty = &AppError{Code: "STUDENT_NAME_EMPTY", Message: "Student name must not be empty", HTTPStatus: http.StatusBadRequest}
)

// Cache errors
var (
	ErrCacheUnavailable = &AppError{Code: "CACHE_UNAVAILABLE", Message: "Cache backend unavailable", HTTPStatus: http.StatusServiceUnavailable}
)

// NewInvalidInput returns an InvalidInput error with a custom message
func NewInvalidInput(format string, args ...any) error {
	return &AppError{
		Code:       ErrInvalidInput.Code,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: ErrInvalidInput.HTTPStatus,
	}
}
