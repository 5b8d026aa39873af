package model

import "errors"

var (
	// Validation errors
	ErrInvalidSlug    = errors.New("post slug is invalid")
	ErrInvalidTitle   = errors.New("post title is invalid")
	ErrInvalidContent = errors.New("post content is invalid")

	// Business rule errors
	ErrPostNotFound  = errors.New("post not found")
	ErrAuthorUnknown = errors.New("post author not found")
	ErrDuplicateSlug = errors.New("post with this slug already exists")
	ErrQuotaExceeded = errors.New("author post quota exceeded")
	ErrNotPostOwner  = errors.New("post belongs to another author")

	// Database errors
	ErrDatabaseQuery = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	case errors.Is(err, ErrAuthorUnknown):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrDuplicateSlug):
		return "DUPLICATE_SLUG"
	case errors.Is(err, ErrQuotaExceeded):
		return "QUOTA_EXCEEDED"
	case errors.Is(err, ErrNotPostOwner):
		return "NOT_POST_OWNER"
	case errors.Is(err, ErrInvalidSlug):
		return "INVALID_SLUG"
	case errors.Is(err, ErrInvalidTitle):
		return "INVALID_TITLE"
	case errors.Is(err, ErrInvalidContent):
		return "INVALID_CONTENT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrAuthorUnknown):
		return 404
	case errors.Is(err, ErrDuplicateSlug):
		return 409
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrNotPostOwner):
		return 403
	case errors.Is(err, ErrInvalidSlug), errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidContent):
		return 400
	default:
		return 500
	}
}
