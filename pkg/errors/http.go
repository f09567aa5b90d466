package errors

import (
	"errors"
)

// HTTPStatusCode maps an error onto the status the waitlist endpoint answers with.
// A conflict is a rejected submission, so it shares 400 with invalid input.
func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeInvalidRequest, ErrorTypeConflict:
		return StatusBadRequest
	default:
		return StatusInternalServerError
	}
}

func GetHumanReadableMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	// SECURITY: avoid leaking internal error strings (DB errors, stack messages, etc.)
	return "An unexpected error occurred"
}
