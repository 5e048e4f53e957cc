package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	hyphenRun       = regexp.MustCompile(`-+`)
)

// Slugify derives the URL-safe value form of a display label: lowercased,
// non-alphanumeric characters stripped, whitespace collapsed to single
// hyphens, repeated hyphens collapsed. The admin layer uses the same rule
// when it persists facet option values, so the derivation must stay stable.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = nonAlphanumeric.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
