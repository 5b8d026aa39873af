package model

import "errors"

// ImageVariants maps variant name to public URL.
type ImageVariants map[string]string

type UploadResult struct {
	Key      string        `json:"key"`
	Variants ImageVariants `json:"variants"`
}

var (
	ErrInvalidImage  = errors.New("uploaded image is invalid")
	ErrImageTooLarge = errors.New("uploaded image exceeds the size limit")
	ErrStorageWrite  = errors.New("failed to store image")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidImage):
		return "INVALID_IMAGE"
	case errors.Is(err, ErrImageTooLarge):
		return "IMAGE_TOO_LARGE"
	case errors.Is(err, ErrStorageWrite):
		return "STORAGE_WRITE_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidImage):
		return 400
	case errors.Is(err, ErrImageTooLarge):
		return 413
	default:
		return 500
	}
}
