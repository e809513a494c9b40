package apperr

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/orishu/turbocache/internal/logging"
)

// AppError represents an application-level error with HTTP context
type AppError struct {
	Code       string `json:"code"`    // Machine-readable code (e.g., "STUDENT_NOT_FOUND")
	Message    string `json:"message"` // Human-readable message
	HTTPStatus int    `json:"-"`       // HTTP status code (not serialized)
	Err        error  `json:"-"`       // Underlying error (not serialized)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error templates
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", HTTPStatus: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Not found", HTTPStatus: http.StatusNotFound}
	ErrConflict       = &AppError{Code: "CONFLICT", Message: "Conflict", HTTPStatus: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", HTTPStatus: http.StatusInternalServerError}
)

// Wrap creates a new error wrapping the original with a custom message
func Wrap(base *AppError, message string, err error) *AppError {
	return &AppError{
		Code:       base.Code,
		Message:    message,
		HTTPStatus: base.HTTPStatus,
		Err:        err,
	}
}

// New creates a new AppError with custom values
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ErrorResponse represents the JSON error response structure
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RespondWithError writes an error response to the HTTP writer. Errors at or
// above 500 are logged server-side (with the request's correlation ID,
// tagged on via logging.Middleware) before the response is written.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	if !stdErrors.As(err, &appErr) {
		appErr = &AppError{
			Code:       "UNKNOWN_ERROR",
			Message:    "An unexpected error occurred",
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logging.LogError(r.Context(), appErr.Unwrap(), appErr.Message, map[string]interface{}{"code": appErr.Code})
	}

	response := ErrorResponse{}
	response.Error.Code = appErr.Code
	response.Error.Message = appErr.Message

	if cid := logging.GetCorrelationID(r.Context()); cid != "" {
		w.Header().Set("X-Correlation-ID", cid)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(response) // Error intentionally ignored - response already committed
}
