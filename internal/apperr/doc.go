// Package apperr provides standardized error handling for the demo HTTP
// server built on top of turbocache.
//
// # Core Types
//
//   - AppError: Application-level error with HTTP context, error code, and message
//   - ErrorResponse: JSON structure for API error responses
//
// # Usage
//
// Using predefined errors:
//
//	if student == nil {
//	    return apperr.ErrStudentNotFound
//	}
//
// Wrapping errors with context:
//
//	if err := db.Query(...); err != nil {
//	    return apperr.Wrap(apperr.ErrInternalServer, "failed to query students", err)
//	}
//
// Responding to HTTP requests:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    if err := doSomething(); err != nil {
//	        apperr.RespondWithError(w, r, err)
//	        return
//	    }
//	}
package apperr
