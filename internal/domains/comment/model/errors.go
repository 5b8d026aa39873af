package model

import "errors"

var (
	ErrInvalidContent = errors.New("comment content is invalid")
	ErrInvalidAuthor  = errors.New("comment author name is invalid")
	ErrPostNotFound   = errors.New("post not found")
	ErrDatabaseQuery  = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	case errors.Is(err, ErrInvalidContent):
		return "INVALID_CONTENT"
	case errors.Is(err, ErrInvalidAuthor):
		return "INVALID_AUTHOR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return 404
	case errors.Is(err, ErrInvalidContent), errors.Is(err, ErrInvalidAuthor):
		return 400
	default:
		return 500
	}
}
