package model

import (
	"encoding/json"
	"time"
)

// Settings rows are singletons keyed by name. The value column is JSONB.
const (
	KeySite         = "site"
	KeyJoinRequests = "join_requests"
)

type Setting struct {
	Key       string          `json:"key" db:"key"`
	Value     json.RawMessage `json:"value" db:"value"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// SiteSettings is a free-form bag: sheet syncs may introduce keys the API
// does not know about yet.
type SiteSettings map[string]interface{}

// JoinState is stored inverted: the column says disabled, the API says
// enabled.
type JoinState struct {
	JoinDisabled bool `json:"join_disabled"`
}

type JoinToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type UpdateSiteRequest struct {
	Settings SiteSettings `json:"settings" binding:"required"`
}

// Entry is one typed row out of a settings sheet.
type Entry struct {
	Key   string
	Type  string
	Value string
}

// Entry types accepted from a settings sheet.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
)
