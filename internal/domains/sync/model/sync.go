package model

import "errors"

// Sheet kinds recognized by header signature.
const (
	KindPosts    = "posts"
	KindSettings = "settings"
)

// Content sources, recorded in results and snapshot metadata.
const (
	SourceBody   = "body"
	SourceURL    = "url"
	SourceUpload = "upload"
	SourceCron   = "cron"
)

// SyncResult reports what one sync run did. Refreshed is false when the
// configured sheet could not be fetched and nothing was written.
type SyncResult struct {
	Refreshed       bool   `json:"refreshed"`
	Kind            string `json:"kind,omitempty"`
	Source          string `json:"source"`
	RowsParsed      int    `json:"rows_parsed"`
	PostsWritten    int    `json:"posts_written"`
	SettingsApplied int    `json:"settings_applied"`
	SnapshotKey     string `json:"snapshot_key,omitempty"`
	Detail          string `json:"detail,omitempty"`
}

type SyncRequest struct {
	CSV      string `json:"csv,omitempty"`
	SheetURL string `json:"sheet_url,omitempty"`
}

var (
	ErrUnknownHeader = errors.New("sheet header does not match a known signature")
	ErrEmptySheet    = errors.New("sheet has no data rows")
	ErrNoSource      = errors.New("no content source provided or configured")
	ErrBadUpload     = errors.New("uploaded file is not a csv or xlsx sheet")
	ErrInvalidRow    = errors.New("sheet row failed validation")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownHeader):
		return "UNKNOWN_HEADER"
	case errors.Is(err, ErrEmptySheet):
		return "EMPTY_SHEET"
	case errors.Is(err, ErrNoSource):
		return "NO_SOURCE"
	case errors.Is(err, ErrBadUpload):
		return "BAD_UPLOAD"
	case errors.Is(err, ErrInvalidRow):
		return "INVALID_ROW"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownHeader), errors.Is(err, ErrEmptySheet),
		errors.Is(err, ErrNoSource), errors.Is(err, ErrBadUpload),
		errors.Is(err, ErrInvalidRow):
		return 400
	default:
		return 500
	}
}
