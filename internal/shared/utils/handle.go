package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Handles are lowercase, url-safe, and appear directly in routes like
// /{handle}, so the format is enforced at the edge.
var handlePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,38}[a-z0-9])?$`)

// NormalizeHandle lowercases and trims a candidate handle.
func NormalizeHandle(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ValidateHandle checks the normalized handle against the allowed format:
// 1-40 chars of [a-z0-9-], no leading/trailing hyphen.
func ValidateHandle(handle string) error {
	if handle == "" {
		return fmt.Errorf("handle is required")
	}
	if len(handle) > 40 {
		return fmt.Errorf("handle exceeds 40 characters")
	}
	if !handlePattern.MatchString(handle) {
		return fmt.Errorf("handle may only contain lowercase letters, digits and hyphens")
	}
	return nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,198}[a-z0-9])?$`)

// ValidateSlug checks a post slug: same alphabet as handles, up to 200 chars.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(slug) > 200 {
		return fmt.Errorf("slug exceeds 200 characters")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and hyphens")
	}
	return nil
}

// GenerateSlug turns a title into a url-safe slug.
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	hyphenated := strings.ReplaceAll(lower, " ", "-")

	reg := regexp.MustCompile(`[^a-z0-9-]+`)
	cleaned := reg.ReplaceAllString(hyphenated, "")

	reg = regexp.MustCompile(`-+`)
	normalized := reg.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}
