package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "alice", NormalizeHandle("  Alice "))
	assert.Equal(t, "bob-smith", NormalizeHandle("BOB-SMITH"))
}

func TestValidateHandle(t *testing.T) {
	valid := []string{"a", "alice", "bob-smith", "x1", "a1-b2-c3"}
	for _, h := range valid {
		assert.NoError(t, ValidateHandle(h), h)
	}

	invalid := []string{
		"",
		"-alice",
		"alice-",
		"Alice",
		"al_ice",
		"al ice",
		"café",
		strings.Repeat("a", 41),
	}
	for _, h := range invalid {
		assert.Error(t, ValidateHandle(h), h)
	}
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("my-first-post"))
	assert.NoError(t, ValidateSlug(strings.Repeat("a", 200)))

	assert.Error(t, ValidateSlug(""))
	assert.Error(t, ValidateSlug("-leading"))
	assert.Error(t, ValidateSlug("trailing-"))
	assert.Error(t, ValidateSlug(strings.Repeat("a", 201)))
}

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Hello World":           "hello-world",
		"  Spaces   Everywhere": "spaces-everywhere",
		"Already-slugged":       "already-slugged",
		"Punctuation! & Co.":    "punctuation-co",
		"---edges---":           "edges",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}
