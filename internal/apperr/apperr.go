package apperr

import "net/http"

// Stable machine-readable error codes returned to clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInvalidCode  = "INVALID_OR_EXPIRED_CODE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeDispatch     = "DISPATCH_FAILED"
	CodeInternal     = "INTERNAL"
)

// Error is a client-visible API error. Status drives the HTTP response code,
// Code is stable across releases, Fields carries per-field validation detail.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

// Validation reports a malformed request payload with field-level detail.
func Validation(fields map[string]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "invalid request payload",
		Fields:  fields,
	}
}

// RateLimited is deliberately vague about which key tripped the limit.
func RateLimited() *Error {
	return &Error{
		Status:  http.StatusTooManyRequests,
		Code:    CodeRateLimited,
		Message: "too many requests, try again later",
	}
}

// InvalidCode is the single undifferentiated verification failure. Missing,
// expired, exhausted and mismatched codes all collapse into it so callers
// learn nothing that would help guessing.
func InvalidCode() *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidCode,
		Message: "invalid or expired code",
	}
}

// Unauthorized rejects a request lacking a valid session credential.
func Unauthorized(message string) *Error {
	return &Error{
		Status:  http.StatusUnauthorized,
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// DispatchFailed signals that the downstream message gateway failed.
func DispatchFailed() *Error {
	return &Error{
		Status:  http.StatusBadGateway,
		Code:    CodeDispatch,
		Message: "failed to send verification message",
	}
}

// Internal hides any server-side failure detail from the client.
func Internal() *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "internal server error",
	}
}
