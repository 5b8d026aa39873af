package model

import (
	"encoding/xml"
	"time"
)

const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Change frequencies and priorities per entry class.
const (
	RootChangeFreq   = "daily"
	AuthorChangeFreq = "weekly"
	PostChangeFreq   = "monthly"

	RootPriority   = "1.0"
	AuthorPriority = "0.6"
	PostPriority   = "0.8"
)

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// AuthorEntry is the slice of an author the sitemap needs.
type AuthorEntry struct {
	Handle    string
	UpdatedAt time.Time
}

// PostEntry is the slice of a post the sitemap needs.
type PostEntry struct {
	Slug         string
	AuthorHandle string
	UpdatedAt    time.Time
}
