package model

import "errors"

var (
	// Validation errors
	ErrInvalidHandle     = errors.New("author handle is invalid")
	ErrInvalidName       = errors.New("author name is invalid")
	ErrInvalidEmail      = errors.New("author email is invalid")
	ErrInvalidTransition = errors.New("invalid field transition")

	// Business rule errors
	ErrAuthorNotFound    = errors.New("author not found")
	ErrDuplicateHandle   = errors.New("author with this handle already exists")
	ErrRequestNotFound   = errors.New("join request not found")
	ErrRequestNotPending = errors.New("join request is not pending")
	ErrJoinDisabled      = errors.New("join requests are disabled")

	// Database errors
	ErrDatabaseQuery = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrDuplicateHandle):
		return "DUPLICATE_HANDLE"
	case errors.Is(err, ErrRequestNotFound):
		return "REQUEST_NOT_FOUND"
	case errors.Is(err, ErrRequestNotPending):
		return "REQUEST_NOT_PENDING"
	case errors.Is(err, ErrJoinDisabled):
		return "JOIN_DISABLED"
	case errors.Is(err, ErrInvalidHandle):
		return "INVALID_HANDLE"
	case errors.Is(err, ErrInvalidName):
		return "INVALID_NAME"
	case errors.Is(err, ErrInvalidEmail):
		return "INVALID_EMAIL"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound), errors.Is(err, ErrRequestNotFound):
		return 404
	case errors.Is(err, ErrDuplicateHandle), errors.Is(err, ErrRequestNotPending):
		return 409
	case errors.Is(err, ErrJoinDisabled):
		return 403
	case errors.Is(err, ErrInvalidHandle), errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrInvalidTransition):
		return 400
	default:
		return 500
	}
}
