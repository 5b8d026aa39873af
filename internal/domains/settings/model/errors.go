package model

import "errors"

var (
	ErrInvalidEntry    = errors.New("settings entry is invalid")
	ErrUnknownType     = errors.New("settings entry type is unknown")
	ErrSettingNotFound = errors.New("setting not found")
	ErrDatabaseQuery   = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrSettingNotFound):
		return "SETTING_NOT_FOUND"
	case errors.Is(err, ErrInvalidEntry):
		return "INVALID_ENTRY"
	case errors.Is(err, ErrUnknownType):
		return "UNKNOWN_TYPE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSettingNotFound):
		return 404
	case errors.Is(err, ErrInvalidEntry), errors.Is(err, ErrUnknownType):
		return 400
	default:
		return 500
	}
}
